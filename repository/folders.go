package repository

import (
	"context"
	"os"

	"linkstash/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FoldersRepo is the MongoDB-backed FolderRepository.
type FoldersRepo struct {
	MongoCollection *mongo.Collection
}

func GetFoldersRepo(client *mongo.Client) *FoldersRepo {
	return &FoldersRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("folders"),
	}
}

func (r *FoldersRepo) InsertFolder(ctx context.Context, folder *model.Folder) error {
	if folder.UserID == "" {
		return model.NewValidationError("user ID is required")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, folder); err != nil {
		return model.NewStorageError("insert folder", err)
	}
	return nil
}

func (r *FoldersRepo) FindFolders(ctx context.Context, userID string, includeArchived bool) ([]*model.Folder, error) {
	query := bson.M{"user_id": userID}
	if !includeArchived {
		query["is_archived"] = false
	}

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, query, opts)
	if err != nil {
		return nil, model.NewStorageError("find folders", err)
	}
	defer cursor.Close(ctx)

	var folders []*model.Folder
	if err = cursor.All(ctx, &folders); err != nil {
		return nil, model.NewStorageError("decode folders", err)
	}
	return folders, nil
}

func (r *FoldersRepo) GetFolder(ctx context.Context, userID, folderID string) (*model.Folder, error) {
	var folder model.Folder
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": folderID, "user_id": userID}).Decode(&folder)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.NewNotFoundError("folder not found")
		}
		return nil, model.NewStorageError("get folder", err)
	}
	return &folder, nil
}

func (r *FoldersRepo) UpdateFolder(ctx context.Context, userID, folderID string, folder *model.Folder) error {
	filter := bson.M{
		"_id":     folderID,
		"user_id": userID,
	}

	update := bson.M{
		"$set": bson.M{
			"name":        folder.Name,
			"is_pinned":   folder.IsPinned,
			"is_archived": folder.IsArchived,
			"updated_at":  folder.UpdatedAt,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return model.NewStorageError("update folder", err)
	}
	if result.MatchedCount == 0 {
		return model.NewNotFoundError("folder not found")
	}
	return nil
}

func (r *FoldersRepo) DeleteFolder(ctx context.Context, userID, folderID string) error {
	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"_id": folderID, "user_id": userID})
	if err != nil {
		return model.NewStorageError("delete folder", err)
	}
	if result.DeletedCount == 0 {
		return model.NewNotFoundError("folder not found")
	}
	return nil
}
