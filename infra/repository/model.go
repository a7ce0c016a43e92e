package repository

import (
	"time"

	"github.com/google/uuid"
)

// Account is the persisted wallet row. Balances are stored in minor units.
type Account struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username       string    `gorm:"uniqueIndex;not null;size:50"`
	HashedPassword string    `gorm:"not null"`
	BalancePEN     int64     `gorm:"column:balance_pen;not null;default:0"`
	BalanceUSD     int64     `gorm:"column:balance_usd;not null;default:0"`
	Version        int64     `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// TransactionRecord is an append-only history row.
// Seq breaks ties between records stamped with the same timestamp.
type TransactionRecord struct {
	Seq         int64     `gorm:"primaryKey;autoIncrement"`
	ID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Username    string    `gorm:"index;not null;size:50"`
	Description string    `gorm:"not null"`
	Timestamp   time.Time `gorm:"index;not null"`
}

// TableName specifies the table name for the TransactionRecord model.
func (TransactionRecord) TableName() string {
	return "transaction_records"
}

// Models lists every table owned by this package, in creation order.
func Models() []any {
	return []any{&Account{}, &TransactionRecord{}}
}
