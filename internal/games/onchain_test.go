package games

import (
	"errors"
	"testing"

	"perps-arcade-backend/internal/models"
)

func TestOnChainAdapterNotDeployed(t *testing.T) {
	var adapter Adapter = NewOnChainAdapter()

	if adapter.Mode() != "onchain" {
		t.Errorf("mode = %q, want onchain", adapter.Mode())
	}

	if _, err := adapter.CreateGame(models.GameTypeDice, 100, "u1", 0); !errors.Is(err, ErrNotDeployed) {
		t.Errorf("CreateGame: expected ErrNotDeployed, got %v", err)
	}
	if _, err := adapter.JoinGame("id", "u2"); !errors.Is(err, ErrNotDeployed) {
		t.Errorf("JoinGame: expected ErrNotDeployed, got %v", err)
	}
	if _, err := adapter.CancelGame("id"); !errors.Is(err, ErrNotDeployed) {
		t.Errorf("CancelGame: expected ErrNotDeployed, got %v", err)
	}

	list, err := adapter.Games()
	if err != nil {
		t.Fatalf("Games failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("on-chain game list should be empty, got %d", len(list))
	}
}
