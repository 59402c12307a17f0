package handler

import (
	"github.com/geodonnees/admin-console/internal/core/domain"
	"github.com/geodonnees/admin-console/internal/core/presenter"
)

// userRow is one table row of the utilisateurs screen. Accounts without a
// subscription expiry render the placeholder in that cell.
type userRow struct {
	ID               int64         `json:"id"`
	Name             string        `json:"nom"`
	Email            string        `json:"email"`
	Phone            string        `json:"phone"`
	Role             presenter.Tag `json:"role"`
	SubscriptionEnds string        `json:"abonnement_expires_le"`
	CreatedAt        string        `json:"created_at"`
}

type userListResponse struct {
	screenMeta
	Rows []userRow `json:"rows"`
}

func toUserRow(u domain.User) userRow {
	return userRow{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Phone:            u.Phone,
		Role:             presenter.Role(u.Role),
		SubscriptionEnds: presenter.Date(u.SubscriptionEnds),
		CreatedAt:        presenter.DateTime(u.CreatedAt),
	}
}
