package policy

import (
	"errors"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Principal is the already-authenticated actor supplied by the auth boundary.
// A zero UserID means no authenticated principal.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func (p Principal) Authenticated() bool {
	return p.UserID != uuid.Nil
}

type ResourceKind string

const (
	KindQuiz       ResourceKind = "quiz"
	KindSubmission ResourceKind = "submission"
)

// Resource tags a protected object with its kind and the identity of its
// owner. The owner field is resolved per kind by the constructors below:
// a quiz is owned by its creator, a submission by its taker.
type Resource struct {
	Kind  ResourceKind
	Owner uuid.UUID
}

func QuizResource(creatorID uuid.UUID) Resource {
	return Resource{Kind: KindQuiz, Owner: creatorID}
}

func SubmissionResource(takerID uuid.UUID) Resource {
	return Resource{Kind: KindSubmission, Owner: takerID}
}

// AdminOnly allows only authenticated principals with the ADMIN role.
func AdminOnly(p Principal) error {
	if !p.Authenticated() {
		return ErrUnauthorized
	}
	if p.Role != RoleAdmin {
		return ErrForbidden
	}
	return nil
}

// UserOnly allows only authenticated principals with the USER role.
func UserOnly(p Principal) error {
	if !p.Authenticated() {
		return ErrUnauthorized
	}
	if p.Role != RoleUser {
		return ErrForbidden
	}
	return nil
}

// OwnerOrAdmin allows admins and the owner of the resource.
func OwnerOrAdmin(p Principal, res Resource) error {
	if !p.Authenticated() {
		return ErrUnauthorized
	}
	if p.Role == RoleAdmin {
		return nil
	}
	if res.Owner == p.UserID {
		return nil
	}
	return ErrForbidden
}

// AdminWriteUserRead allows reads to any authenticated principal and
// restricts mutations to admins.
func AdminWriteUserRead(p Principal, write bool) error {
	if !p.Authenticated() {
		return ErrUnauthorized
	}
	if !write {
		return nil
	}
	if p.Role != RoleAdmin {
		return ErrForbidden
	}
	return nil
}
