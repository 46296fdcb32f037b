package users

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
	"github.com/simpleapi/simpleapi/internal/models"
)

// MongoStore implements Store over two MongoDB collections (users, roles).
// Uniqueness of username/email is enforced by unique indexes created in
// EnsureIndexes; hashing stays in Go (bcrypt) so records are portable
// between backends.
type MongoStore struct {
	users *mongo.Collection
	roles *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		users: db.Collection("users"),
		roles: db.Collection("roles"),
	}
}

// EnsureIndexes creates the unique indexes backing the identity invariants.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "usernameLower", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "emailLower", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

type mongoUser struct {
	models.UserRecord `bson:",inline"`
	UsernameLower     string `bson:"usernameLower"`
	EmailLower        string `bson:"emailLower"`
}

func (s *MongoStore) Create(ctx context.Context, u *models.UserRecord, password string) error {
	reasons := CheckPassword(password)
	if len(reasons) > 0 {
		return &RejectedError{Reasons: reasons}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	doc := mongoUser{
		UserRecord:    *u,
		UsernameLower: strings.ToLower(u.Username),
		EmailLower:    strings.ToLower(u.Email),
	}
	doc.ID = uuid.NewString()
	doc.PasswordHash = string(hash)
	if doc.Roles == nil {
		doc.Roles = []string{}
	}
	if doc.Claims == nil {
		doc.Claims = []models.Claim{}
	}

	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &RejectedError{Reasons: []string{
				"DuplicateIdentity Username '" + u.Username + "' or email '" + u.Email + "' is already taken.",
			}}
		}
		return err
	}
	u.ID = doc.ID
	u.PasswordHash = doc.PasswordHash
	return nil
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	return s.findOne(ctx, bson.M{"emailLower": strings.ToLower(email)})
}

func (s *MongoStore) FindByUsername(ctx context.Context, username string) (*models.UserRecord, error) {
	return s.findOne(ctx, bson.M{"usernameLower": strings.ToLower(username)})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*models.UserRecord, error) {
	var doc mongoUser
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	rec := doc.UserRecord
	return &rec, nil
}

func (s *MongoStore) VerifyPassword(ctx context.Context, u *models.UserRecord, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *MongoStore) GetRoles(ctx context.Context, userID string) ([]string, error) {
	rec, err := s.byID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return rec.Roles, nil
}

func (s *MongoStore) GetClaims(ctx context.Context, userID string) ([]models.Claim, error) {
	rec, err := s.byID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return rec.Claims, nil
}

func (s *MongoStore) AddClaim(ctx context.Context, userID string, claim models.Claim) error {
	return s.updateByID(ctx, userID, bson.M{"$push": bson.M{"claims": claim}})
}

func (s *MongoStore) SetLockout(ctx context.Context, userID string, enabled bool) error {
	return s.updateByID(ctx, userID, bson.M{"$set": bson.M{"lockoutEnabled": enabled}})
}

func (s *MongoStore) EnsureRole(ctx context.Context, name string) error {
	opts := options.Update().SetUpsert(true)
	_, err := s.roles.UpdateOne(ctx, bson.M{"_id": name}, bson.M{"$setOnInsert": bson.M{"_id": name}}, opts)
	return err
}

func (s *MongoStore) AddToRole(ctx context.Context, userID, role string) error {
	if err := s.roles.FindOne(ctx, bson.M{"_id": role}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUnknownRole
		}
		return err
	}
	return s.updateByID(ctx, userID, bson.M{"$addToSet": bson.M{"roles": role}})
}

func (s *MongoStore) byID(ctx context.Context, userID string) (*models.UserRecord, error) {
	var doc mongoUser
	if err := s.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rec := doc.UserRecord
	return &rec, nil
}

func (s *MongoStore) updateByID(ctx context.Context, userID string, update bson.M) error {
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
