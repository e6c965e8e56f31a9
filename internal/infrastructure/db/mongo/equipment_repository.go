package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/steriltrack/equipment-system/internal/core/domain"
)

const (
	collectionEquipments = "equipments"
	collectionSteps      = "cleaning_steps"
	collectionAudit      = "status_changes"
)

// EquipmentRepository is the MongoDB equipment adapter.
type EquipmentRepository struct {
	col   *mongo.Collection
	steps *mongo.Collection
}

func NewEquipmentRepository(db *mongo.Database) *EquipmentRepository {
	return &EquipmentRepository{
		col:   db.Collection(collectionEquipments),
		steps: db.Collection(collectionSteps),
	}
}

// Create inserts the equipment document and its seeded steps. Mongo offers no
// cross-collection transaction on a standalone server, so the steps are
// inserted after the equipment; a failure surfaces to the caller and the
// creation is considered failed as a whole.
func (r *EquipmentRepository) Create(ctx context.Context, e *domain.Equipment, steps []*domain.CleaningStep) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, e); err != nil {
		return err
	}

	docs := make([]interface{}, 0, len(steps))
	for _, st := range steps {
		docs = append(docs, st)
	}
	if _, err := r.steps.InsertMany(ctx, docs); err != nil {
		return err
	}
	return nil
}

func (r *EquipmentRepository) FindByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.Equipment
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEquipmentNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) List(ctx context.Context) ([]*domain.Equipment, error) {
	return r.find(ctx, bson.M{})
}

func (r *EquipmentRepository) ListByStatus(ctx context.Context, status domain.EquipmentStatus) ([]*domain.Equipment, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *EquipmentRepository) find(ctx context.Context, filter bson.M) ([]*domain.Equipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*domain.Equipment, 0)
	for cur.Next(ctx) {
		var e domain.Equipment
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, cur.Err()
}

func (r *EquipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrEquipmentNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the list queries rely on.
func (r *EquipmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return err
	}

	stepIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "equipment_id", Value: 1}}},
	}
	_, err := r.steps.Indexes().CreateMany(ctx, stepIndexes)
	return err
}

// StepRepository is the MongoDB cleaning step adapter.
type StepRepository struct {
	col *mongo.Collection
}

func NewStepRepository(db *mongo.Database) *StepRepository {
	return &StepRepository{col: db.Collection(collectionSteps)}
}

func (r *StepRepository) FindByID(ctx context.Context, id int64) (*domain.CleaningStep, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var st domain.CleaningStep
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&st)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStepNotFound
		}
		return nil, err
	}
	return &st, nil
}

func (r *StepRepository) ListByEquipment(ctx context.Context, equipmentID int64) ([]*domain.CleaningStep, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"equipment_id": equipmentID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*domain.CleaningStep, 0)
	for cur.Next(ctx) {
		var st domain.CleaningStep
		if err := cur.Decode(&st); err != nil {
			return nil, err
		}
		out = append(out, &st)
	}
	return out, cur.Err()
}

func (r *StepRepository) Update(ctx context.Context, st *domain.CleaningStep) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": st.ID}, st)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrStepNotFound
	}
	return nil
}

// AuditRepository is the MongoDB audit trail adapter.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAudit)}
}

func (r *AuditRepository) Append(ctx context.Context, change *domain.StatusChange) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, change)
	return err
}

func (r *AuditRepository) ListByEquipment(ctx context.Context, equipmentID int64) ([]*domain.StatusChange, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"equipment_id": equipmentID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*domain.StatusChange, 0)
	for cur.Next(ctx) {
		var c domain.StatusChange
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, cur.Err()
}
