package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
)

const collectionInvoices = "invoices"

type InvoiceRepository struct {
	col *mongo.Collection
}

func NewInvoiceRepository(db *mongo.Database) *InvoiceRepository {
	return &InvoiceRepository{col: db.Collection(collectionInvoices)}
}

// Create inserts a new invoice document.
func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, inv)
	return err
}

// FindByID retrieves an invoice without an owner filter. Used by the approval
// flow, where the link token is the credential.
func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByIDForUser scopes the lookup to the owning user.
func (r *InvoiceRepository) FindByIDForUser(ctx context.Context, id, userID string) (*domain.Invoice, error) {
	return r.findOne(ctx, bson.M{"_id": id, "user_id": userID})
}

func (r *InvoiceRepository) findOne(ctx context.Context, filter bson.M) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var inv domain.Invoice
	err := r.col.FindOne(ctx, filter).Decode(&inv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// List returns all invoices belonging to a user.
func (r *InvoiceRepository) List(ctx context.Context, userID string) ([]*domain.Invoice, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

// ListAll returns every invoice. Used to rebuild the billed index at startup.
func (r *InvoiceRepository) ListAll(ctx context.Context) ([]*domain.Invoice, error) {
	return r.find(ctx, bson.M{})
}

func (r *InvoiceRepository) find(ctx context.Context, filter bson.M) ([]*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var invoices []*domain.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// UpdateIfStatus replaces the invoice document only when the stored status
// still equals expect. A concurrent writer that moved the invoice first makes
// the filter miss, which surfaces as ErrInvalidTransition.
func (r *InvoiceRepository) UpdateIfStatus(ctx context.Context, inv *domain.Invoice, expect domain.InvoiceStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": inv.ID, "status": expect}, inv)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": inv.ID})
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrInvoiceNotFound
		}
		return domain.ErrInvalidTransition
	}
	return nil
}

// Delete removes an invoice owned by the user.
func (r *InvoiceRepository) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the invoices collection.
func (r *InvoiceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "task_ids", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
