package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// credentialRecordKey is the fixed key of the single durable session record.
const credentialRecordKey = "session"

// CredentialRecord is the stored shape of the persisted session: one row,
// upserted on login, deleted on logout.
type CredentialRecord struct {
	bun.BaseModel `bun:"table:auth_credentials,alias:cred"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid" json:"id,omitempty"`
	RecordKey     string     `bun:"record_key,notnull,unique" json:"record_key,omitempty"`
	Token         string     `bun:"token,notnull" json:"token,omitempty"`
	UserJSON      string     `bun:"user_json,notnull" json:"user_json,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// BunCredentialStore is the default durable CredentialStore, backed by a
// local sqlite database through Bun.
type BunCredentialStore struct {
	db *bun.DB
}

var _ CredentialStore = (*BunCredentialStore)(nil)

// NewBunCredentialStore wraps an existing Bun handle.
func NewBunCredentialStore(db *bun.DB) *BunCredentialStore {
	return &BunCredentialStore{db: db}
}

// OpenSQLiteCredentialStore opens (or creates) a sqlite database at dsn and
// ensures the credential table exists. Use ":memory:" for throwaway stores.
func OpenSQLiteCredentialStore(ctx context.Context, dsn string) (*BunCredentialStore, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "open credential database")
	}

	store := NewBunCredentialStore(bun.NewDB(sqldb, sqlitedialect.New()))
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// Init creates the credential table if needed.
func (s *BunCredentialStore) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*CredentialRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "create credential table")
	}
	return nil
}

// Save upserts the single session record.
func (s *BunCredentialStore) Save(ctx context.Context, record PersistedSession) error {
	userJSON, err := json.Marshal(record.User)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "encode persisted user")
	}

	now := time.Now()
	row := &CredentialRecord{
		ID:        uuid.New(),
		RecordKey: credentialRecordKey,
		Token:     record.Token,
		UserJSON:  string(userJSON),
		CreatedAt: &now,
		UpdatedAt: &now,
	}

	_, err = s.db.NewInsert().
		Model(row).
		On("CONFLICT (record_key) DO UPDATE").
		Set("token = EXCLUDED.token").
		Set("user_json = EXCLUDED.user_json").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "save credential record")
	}
	return nil
}

// Load reads the session record. A missing record is not an error; it simply
// means no session survives from a previous run.
func (s *BunCredentialStore) Load(ctx context.Context) (*PersistedSession, error) {
	row := &CredentialRecord{}
	err := s.db.NewSelect().
		Model(row).
		Where("record_key = ?", credentialRecordKey).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "load credential record")
	}

	record := &PersistedSession{Token: row.Token}
	if err := json.Unmarshal([]byte(row.UserJSON), &record.User); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "decode persisted user")
	}
	return record, nil
}

// Clear removes the session record.
func (s *BunCredentialStore) Clear(ctx context.Context) error {
	_, err := s.db.NewDelete().
		Model((*CredentialRecord)(nil)).
		Where("record_key = ?", credentialRecordKey).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "clear credential record")
	}
	return nil
}

// Close releases the underlying database handle.
func (s *BunCredentialStore) Close() error {
	return s.db.Close()
}
