package repository

import (
	"context"

	"tagarena/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LedgerRepo persists per-account currency and ownership records.
type LedgerRepo interface {
	Get(ctx context.Context, name string) (*model.Account, error)
	Upsert(ctx context.Context, acct *model.Account) error
}

type ledgerRepo struct {
	collection *mongo.Collection
}

// NewLedgerRepo creates a Mongo-backed ledger repository.
func NewLedgerRepo(db *mongo.Database) LedgerRepo {
	return &ledgerRepo{
		collection: db.Collection("accounts"),
	}
}

func (r *ledgerRepo) Get(ctx context.Context, name string) (*model.Account, error) {
	var acct model.Account
	err := r.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&acct)
	if err == mongo.ErrNoDocuments {
		return nil, nil // account not found
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

func (r *ledgerRepo) Upsert(ctx context.Context, acct *model.Account) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": acct.Name}, acct,
		options.Replace().SetUpsert(true))
	return err
}
