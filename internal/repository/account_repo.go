package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bytebabies/internal/docstore"
	"bytebabies/internal/models"
)

// AccountRepository stores login credentials
type AccountRepository struct {
	store docstore.Store
}

func NewAccountRepository(store docstore.Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// CreateAccount stores a new credential and fills in its generated uid
func (r *AccountRepository) CreateAccount(ctx context.Context, account *models.Account) error {
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	uid, err := r.store.Add(ctx, AccountsCollection, docstore.Fields{
		"email":        account.Email,
		"passwordHash": account.PasswordHash,
		"createdAt":    account.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	account.UID = uid
	return nil
}

// GetAccountByEmail returns the account for email (case-insensitive), or nil
func (r *AccountRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	docs, err := r.store.Where(ctx, AccountsCollection, "email", strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return accountFromDocument(docs[0]), nil
}

// GetAccount returns the account with uid, or nil
func (r *AccountRepository) GetAccount(ctx context.Context, uid string) (*models.Account, error) {
	doc, err := r.store.Get(ctx, AccountsCollection, uid)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return accountFromDocument(doc), nil
}

func accountFromDocument(doc docstore.Document) *models.Account {
	createdAt, _ := time.Parse(time.RFC3339, doc.Fields.String("createdAt"))
	return &models.Account{
		UID:          doc.ID,
		Email:        doc.Fields.String("email"),
		PasswordHash: doc.Fields.String("passwordHash"),
		CreatedAt:    createdAt,
	}
}
