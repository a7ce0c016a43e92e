package repository

import (
	"context"
	"sort"

	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/bianca-ap01/coin-swap/pkg/domain/account"
	"github.com/bianca-ap01/coin-swap/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new AccountRepository backed by db.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create implements repository.AccountRepository.
func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	row := mapAccountToModel(a)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

// GetByUsername implements repository.AccountRepository.
func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	var row Account
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return mapModelToAccount(&row)
}

// LockByUsernames implements repository.AccountRepository.
//
// The usernames are deduplicated and sorted so that two transactions locking
// the same pair always acquire the row locks in the same order.
func (r *accountRepository) LockByUsernames(
	ctx context.Context,
	usernames ...string,
) (map[string]*account.Account, error) {
	names := uniqueSorted(usernames)
	out := make(map[string]*account.Account, len(names))
	if len(names) == 0 {
		return out, nil
	}

	var rows []Account
	err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("username IN ?", names).
			Order("username ASC").
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	for i := range rows {
		a, err := mapModelToAccount(&rows[i])
		if err != nil {
			return nil, err
		}
		out[a.Username] = a
	}
	return out, nil
}

// UpdateBalances implements repository.AccountRepository.
func (r *accountRepository) UpdateBalances(ctx context.Context, a *account.Account) error {
	result := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ? AND version = ?", a.ID, a.Version).
		Updates(map[string]any{
			"balance_pen": a.BalancePEN.Amount(),
			"balance_usd": a.BalanceUSD.Amount(),
			"version":     a.Version + 1,
			"updated_at":  a.UpdatedAt,
		})
	if result.Error != nil {
		return MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrConcurrentUpdate
	}
	a.Version++
	return nil
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func mapAccountToModel(a *account.Account) Account {
	return Account{
		ID:             a.ID,
		Username:       a.Username,
		HashedPassword: a.HashedPassword,
		BalancePEN:     a.BalancePEN.Amount(),
		BalanceUSD:     a.BalanceUSD.Amount(),
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func mapModelToAccount(row *Account) (*account.Account, error) {
	return account.New().
		WithID(row.ID).
		WithUsername(row.Username).
		WithHashedPassword(row.HashedPassword).
		WithBalances(row.BalancePEN, row.BalanceUSD).
		WithVersion(row.Version).
		WithTimestamps(row.CreatedAt, row.UpdatedAt).
		Build()
}
