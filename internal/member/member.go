// Package member is the boundary to the club's member directory service.
// Identity, roles and activation live there; this core only needs to know
// which members are currently active.
package member

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=member.go -destination=directory_mock.go -package=member
type Directory interface {
	ActiveMemberIDs(ctx context.Context) ([]uuid.UUID, error)
}
