package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staffdesk/internal/core/employeeid"
	"staffdesk/internal/core/model"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByRole(ctx context.Context, role model.Role) ([]*model.User, error)
	FindMostRecent(ctx context.Context) (*model.User, error)
	Update(ctx context.Context, id string, role model.Role, patch model.UserPatch) (*model.User, error)
	Delete(ctx context.Context, id string, role model.Role) error
	// NextEmployeeID atomically advances the store-owned sequence and
	// returns the freshly issued label.
	NextEmployeeID(ctx context.Context) (string, error)
}

const (
	usersCollection    = "users"
	countersCollection = "counters"
	sequenceKey        = "employeeId"
	queryTimeout       = 5 * time.Second
)

type MongoUserRepository struct {
	users    *mongo.Collection
	counters *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		users:    db.Collection(usersCollection),
		counters: db.Collection(countersCollection),
	}
}

// EnsureIndexes creates the unique indexes on email and employeeId.
// The email index is what closes the check-then-insert window on
// registration: a losing concurrent insert fails here instead of
// producing a second record.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "employeeId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

// EnsureSequence raises the counter to at least the suffix of the most
// recently created record, so data written by the legacy
// read-latest-then-increment scheme continues the same series. A
// malformed stored suffix aborts startup rather than restarting the
// sequence underneath existing ids.
func (r *MongoUserRepository) EnsureSequence(ctx context.Context) error {
	floor := employeeid.Seed
	last, err := r.FindMostRecent(ctx)
	if err != nil {
		return err
	}
	if last != nil && last.EmployeeID != "" {
		n, err := employeeid.Parse(last.EmployeeID)
		if err != nil {
			return fmt.Errorf("seeding employee id sequence: %w", err)
		}
		floor = n
	}

	opts := options.Update().SetUpsert(true)
	_, err = r.counters.UpdateOne(ctx,
		bson.M{"_id": sequenceKey},
		bson.M{"$max": bson.M{"seq": floor}},
		opts,
	)
	return err
}

// NextEmployeeID increments the counter in a single findAndModify, so
// two concurrent registrations can never be handed the same label. The
// pipeline update seeds the counter if nothing ensured it yet.
func (r *MongoUserRepository) NextEmployeeID(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{{Key: "seq", Value: bson.D{
			{Key: "$add", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$seq", employeeid.Seed}}},
				1,
			}},
		}}}}},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx, bson.M{"_id": sequenceKey}, update, opts).Decode(&counter)
	if err != nil {
		return "", err
	}
	return employeeid.Format(counter.Seq), nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user *model.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user model.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user model.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) FindByRole(ctx context.Context, role model.Role) ([]*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.users.Find(ctx, bson.M{"role": role}, opts)
	if err != nil {
		return nil, err
	}
	var users []*model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *MongoUserRepository) FindMostRecent(ctx context.Context) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var user model.User
	err := r.users.FindOne(ctx, bson.M{}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) Update(ctx context.Context, id string, role model.Role, patch model.UserPatch) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.DOB != nil {
		set["dob"] = *patch.DOB
	}
	if patch.Gender != nil {
		set["gender"] = *patch.Gender
	}
	if patch.Age != nil {
		set["age"] = *patch.Age
	}
	if patch.Mobile != nil {
		set["mobile"] = *patch.Mobile
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Company != nil {
		set["company"] = *patch.Company
	}

	filter := bson.M{"_id": id, "role": role}
	if len(set) == 0 {
		var user model.User
		err := r.users.FindOne(ctx, filter).Decode(&user)
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return &user, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user model.User
	err := r.users.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id string, role model.Role) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.users.DeleteOne(ctx, bson.M{"_id": id, "role": role})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
