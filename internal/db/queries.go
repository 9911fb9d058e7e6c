package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"learnhub/internal/models"
)

// DBTX is the subset of pgx shared by the pool and a transaction, so the
// same queries run in either.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries bundles all database accessors.
type Queries struct {
	db DBTX
}

// NewQueries creates a Queries instance backed by db.
func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries bound to the given transaction.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// --- Users ---

const getUserByEmail = `
SELECT id, google_id, email, name, picture, role, created_at
FROM users WHERE email = $1
`

// GetUserByEmail returns the user with the given email, or pgx.ErrNoRows.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := q.db.QueryRow(ctx, getUserByEmail, email).Scan(
		&u.ID, &u.GoogleID, &u.Email, &u.Name, &u.Picture, &u.Role, &u.CreatedAt)
	return u, err
}

const getUserByID = `
SELECT id, google_id, email, name, picture, role, created_at
FROM users WHERE id = $1
`

// GetUserByID returns the user with the given id, or pgx.ErrNoRows.
func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	var u models.User
	err := q.db.QueryRow(ctx, getUserByID, id).Scan(
		&u.ID, &u.GoogleID, &u.Email, &u.Name, &u.Picture, &u.Role, &u.CreatedAt)
	return u, err
}

// CreateUserParams holds the fields for CreateUser.
type CreateUserParams struct {
	GoogleID string
	Email    string
	Name     string
	Picture  string
	Role     models.UserRole
}

const createUser = `
INSERT INTO users (google_id, email, name, picture, role)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, google_id, email, name, picture, role, created_at
`

// CreateUser inserts a new user record.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (models.User, error) {
	var u models.User
	err := q.db.QueryRow(ctx, createUser,
		arg.GoogleID, arg.Email, arg.Name, arg.Picture, arg.Role).Scan(
		&u.ID, &u.GoogleID, &u.Email, &u.Name, &u.Picture, &u.Role, &u.CreatedAt)
	return u, err
}

const updateUserRole = `
UPDATE users SET role = $2 WHERE id = $1
`

// UpdateUserRole switches a user between student and instructor.
func (q *Queries) UpdateUserRole(ctx context.Context, id uuid.UUID, role models.UserRole) error {
	_, err := q.db.Exec(ctx, updateUserRole, id, role)
	return err
}

// --- Activity log ---

// CreateActivityLogParams holds the fields for CreateActivityLog.
type CreateActivityLogParams struct {
	UserID     pgtype.UUID
	Action     string
	TargetType pgtype.Text
	TargetID   pgtype.UUID
	Details    []byte
}

const createActivityLog = `
INSERT INTO activity_logs (user_id, action, target_type, target_id, details)
VALUES ($1, $2, $3, $4, $5)
`

// CreateActivityLog records one user-visible action for auditing.
func (q *Queries) CreateActivityLog(ctx context.Context, arg CreateActivityLogParams) error {
	_, err := q.db.Exec(ctx, createActivityLog,
		arg.UserID, arg.Action, arg.TargetType, arg.TargetID, arg.Details)
	return err
}
