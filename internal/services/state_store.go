package services

import (
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"perps-arcade-backend/internal/games"
	"perps-arcade-backend/internal/models"
)

// walletStateStore adapts RedisService to the game adapter's
// StateStore: the balance side is one wallet, the game-list side is
// the shared open-games lobby. Reads and writes are plain get/set;
// concurrent joins against the same game can race on the lobby list,
// which the demo tolerates.
type walletStateStore struct {
	svc     *RedisService
	address string
}

// StateStore binds a game-adapter state store to one wallet.
func (s *RedisService) StateStore(address string) games.StateStore {
	return &walletStateStore{svc: s, address: address}
}

func (w *walletStateStore) Balance() (float64, error) {
	wallet, err := w.svc.GetWallet(w.address)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

func (w *walletStateStore) SetBalance(amount float64) error {
	wallet, err := w.svc.GetWallet(w.address)
	if err != nil {
		return err
	}
	wallet.Balance = amount
	return w.svc.SaveWallet(wallet)
}

func (w *walletStateStore) Games() ([]*models.Game, error) {
	data, err := w.svc.client.Get(w.svc.ctx, KeyGamesLobby).Result()
	if err == redis.Nil {
		return []*models.Game{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lobby: %v", err)
	}

	var list []*models.Game
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lobby: %v", err)
	}

	return list, nil
}

func (w *walletStateStore) SetGames(list []*models.Game) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal lobby: %v", err)
	}
	return w.svc.client.Set(w.svc.ctx, KeyGamesLobby, data, 0).Err()
}
