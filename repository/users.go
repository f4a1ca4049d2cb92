package repository

import (
	"context"
	"os"
	"strings"

	"linkstash/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UsersRepo is the MongoDB-backed UserRepository.
type UsersRepo struct {
	MongoCollection *mongo.Collection
}

func GetUsersRepo(client *mongo.Client) *UsersRepo {
	return &UsersRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("users"),
	}
}

func (r *UsersRepo) InsertUser(ctx context.Context, user *model.User) error {
	if _, err := r.MongoCollection.InsertOne(ctx, user); err != nil {
		return model.NewStorageError("insert user", err)
	}
	return nil
}

func (r *UsersRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, model.NewStorageError("find user", err)
	}
	return &user, nil
}

func (r *UsersRepo) GetUser(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"user_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.NewNotFoundError("user not found")
		}
		return nil, model.NewStorageError("get user", err)
	}
	return &user, nil
}
