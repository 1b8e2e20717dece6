package games

import "perps-arcade-backend/internal/models"

// OnChainAdapter is the placeholder for settlement against the
// deployed perps program. It exists to pin the Adapter seam: every
// state-changing operation fails with ErrNotDeployed until the program
// ships, and the open-game list is empty.
type OnChainAdapter struct{}

func NewOnChainAdapter() *OnChainAdapter {
	return &OnChainAdapter{}
}

func (a *OnChainAdapter) Mode() string {
	return "onchain"
}

func (a *OnChainAdapter) CreateGame(models.GameType, float64, string, float64) (*models.Game, error) {
	return nil, ErrNotDeployed
}

func (a *OnChainAdapter) JoinGame(string, string) (*JoinResult, error) {
	return nil, ErrNotDeployed
}

func (a *OnChainAdapter) CancelGame(string) (*models.Game, error) {
	return nil, ErrNotDeployed
}

func (a *OnChainAdapter) Games() ([]*models.Game, error) {
	return []*models.Game{}, nil
}
