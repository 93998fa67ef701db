package oclapi

import (
	"context"
	"embed"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/ocladmin/pkg/ocl"
	"github.com/dmitrymomot/ocladmin/pkg/pg"
	"github.com/dmitrymomot/ocladmin/pkg/secrets"
)

// Migrations holds the schema for NewPostgresStore, applied with pg.Migrate.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations.
const MigrationsDir = "migrations"

// TokenPurpose is the secrets.Cipher purpose used for stored tokens.
const TokenPurpose = "ocl.subscription.token"

type postgresStore struct {
	pool   *pgxpool.Pool
	cipher *secrets.Cipher
}

// NewPostgresStore returns a Store backed by the ocl_subscription table.
// Tokens are sealed with cipher before they are written.
func NewPostgresStore(pool *pgxpool.Pool, cipher *secrets.Cipher) Store {
	return &postgresStore{pool: pool, cipher: cipher}
}

const selectColumns = `uuid::text, url, token, subscribed_to_snapshot, validation_type, attributes`

func (s *postgresStore) Current(ctx context.Context) (ocl.Subscription, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM ocl_subscription ORDER BY created_at LIMIT 1`)
	return s.scan(row)
}

// Put relies on the singleton unique constraint: a concurrent insert turns
// into an update of the row that won.
func (s *postgresStore) Put(ctx context.Context, sub ocl.Subscription) (ocl.Subscription, bool, error) {
	token, attrs, err := s.encode(sub)
	if err != nil {
		return ocl.Subscription{}, false, err
	}

	var created bool
	row := s.pool.QueryRow(ctx, `
		INSERT INTO ocl_subscription (uuid, url, token, subscribed_to_snapshot, validation_type, attributes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (singleton) DO UPDATE
		SET url = EXCLUDED.url, token = EXCLUDED.token,
		    subscribed_to_snapshot = EXCLUDED.subscribed_to_snapshot,
		    validation_type = EXCLUDED.validation_type,
		    attributes = EXCLUDED.attributes, updated_at = now()
		RETURNING `+selectColumns+`, (xmax = 0)`,
		uuid.NewString(), sub.URL, token, sub.SubscribedToSnapshot, string(sub.ValidationType), attrs,
	)
	saved, err := s.scan(row, &created)
	if err != nil {
		return ocl.Subscription{}, false, err
	}
	return saved, created, nil
}

func (s *postgresStore) Update(ctx context.Context, sub ocl.Subscription) (ocl.Subscription, error) {
	if uuid.Validate(sub.UUID) != nil {
		return ocl.Subscription{}, ErrNotFound
	}
	token, attrs, err := s.encode(sub)
	if err != nil {
		return ocl.Subscription{}, err
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE ocl_subscription
		SET url = $2, token = $3, subscribed_to_snapshot = $4, validation_type = $5,
		    attributes = $6, updated_at = now()
		WHERE uuid = $1
		RETURNING `+selectColumns,
		sub.UUID, sub.URL, token, sub.SubscribedToSnapshot, string(sub.ValidationType), attrs,
	)
	return s.scan(row)
}

func (s *postgresStore) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return ErrNotFound
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM ocl_subscription WHERE uuid = $1`, id)
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scan reads selectColumns followed by the destinations in more.
func (s *postgresStore) scan(row scanner, more ...any) (ocl.Subscription, error) {
	var (
		sub          ocl.Subscription
		token, vtype string
		attrs        []byte
	)
	dest := append([]any{&sub.UUID, &sub.URL, &token, &sub.SubscribedToSnapshot, &vtype, &attrs}, more...)
	err := row.Scan(dest...)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return ocl.Subscription{}, ErrNotFound
		}
		return ocl.Subscription{}, errors.Join(ErrStorage, err)
	}

	sub.ValidationType = ocl.ValidationType(vtype)
	if sub.Token, err = s.cipher.Open(token); err != nil {
		return ocl.Subscription{}, errors.Join(ErrStorage, err)
	}
	if len(attrs) > 0 {
		extra, err := ocl.DecodeAttributes(attrs)
		if err != nil {
			return ocl.Subscription{}, errors.Join(ErrStorage, err)
		}
		if len(extra) > 0 {
			sub.Extra = extra
		}
	}
	return sub, nil
}

func (s *postgresStore) encode(sub ocl.Subscription) (token string, attrs []byte, err error) {
	if token, err = s.cipher.Seal(sub.Token); err != nil {
		return "", nil, errors.Join(ErrStorage, err)
	}
	extra := sub.Extra
	if extra == nil {
		extra = map[string]any{}
	}
	if attrs, err = json.Marshal(extra); err != nil {
		return "", nil, errors.Join(ErrStorage, err)
	}
	return token, attrs, nil
}
