package repository

import (
	"context"
	"os"
	"time"

	"linkstash/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ItemsRepo is the MongoDB-backed ItemRepository.
type ItemsRepo struct {
	MongoCollection *mongo.Collection
}

func GetItemsRepo(client *mongo.Client) *ItemsRepo {
	return &ItemsRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("items"),
	}
}

func (r *ItemsRepo) InsertItem(ctx context.Context, item *model.Item) error {
	if item.UserID == "" {
		return model.NewValidationError("user ID is required")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, item); err != nil {
		return model.NewStorageError("insert item", err)
	}
	return nil
}

func itemFilterQuery(userID string, filter ItemFilter) bson.M {
	query := bson.M{"user_id": userID}

	switch {
	case filter.TrashOnly:
		query["is_trash"] = true
	case !filter.IncludeTrash:
		query["is_trash"] = false
	}
	if !filter.IncludeArchived && !filter.TrashOnly {
		query["is_archived"] = false
	}
	if filter.StarredOnly {
		query["is_starred"] = true
	}
	if filter.Type != nil {
		query["type"] = *filter.Type
	}
	if filter.Category != nil {
		query["category"] = *filter.Category
	}
	if filter.FolderID != nil {
		query["folder_id"] = *filter.FolderID
	}
	if filter.SearchText != "" {
		pattern := bson.M{"$regex": filter.SearchText, "$options": "i"}
		query["$or"] = []bson.M{
			{"title": pattern},
			{"content": pattern},
			{"description": pattern},
			{"metadata.tags": pattern},
		}
	}
	return query
}

func (r *ItemsRepo) FindItems(ctx context.Context, userID string, filter ItemFilter) ([]*model.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, itemFilterQuery(userID, filter), opts)
	if err != nil {
		return nil, model.NewStorageError("find items", err)
	}
	defer cursor.Close(ctx)

	var items []*model.Item
	if err = cursor.All(ctx, &items); err != nil {
		return nil, model.NewStorageError("decode items", err)
	}
	return items, nil
}

func (r *ItemsRepo) GetItem(ctx context.Context, userID, itemID string) (*model.Item, error) {
	var item model.Item
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": itemID, "user_id": userID}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.NewNotFoundError("item not found")
		}
		return nil, model.NewStorageError("get item", err)
	}
	return &item, nil
}

func (r *ItemsRepo) UpdateItem(ctx context.Context, userID, itemID string, item *model.Item) error {
	filter := bson.M{
		"_id":     itemID,
		"user_id": userID,
	}

	update := bson.M{
		"$set": bson.M{
			"title":       item.Title,
			"content":     item.Content,
			"description": item.Description,
			"folder_id":   item.FolderID,
			"is_starred":  item.IsStarred,
			"is_archived": item.IsArchived,
			"is_trash":    item.IsTrash,
			"deleted_at":  item.DeletedAt,
			"metadata":    item.Metadata,
			"updated_at":  item.UpdatedAt,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return model.NewStorageError("update item", err)
	}
	if result.MatchedCount == 0 {
		return model.NewNotFoundError("item not found")
	}
	return nil
}

func (r *ItemsRepo) DeleteItem(ctx context.Context, userID, itemID string) error {
	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"_id": itemID, "user_id": userID})
	if err != nil {
		return model.NewStorageError("delete item", err)
	}
	if result.DeletedCount == 0 {
		return model.NewNotFoundError("item not found")
	}
	return nil
}

func (r *ItemsRepo) DeleteTrash(ctx context.Context, userID string) (int, error) {
	result, err := r.MongoCollection.DeleteMany(ctx,
		bson.M{"user_id": userID, "is_trash": true})
	if err != nil {
		return 0, model.NewStorageError("empty trash", err)
	}
	return int(result.DeletedCount), nil
}

func (r *ItemsRepo) CountFolderItems(ctx context.Context, userID, folderID string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx,
		bson.M{"user_id": userID, "folder_id": folderID, "is_trash": false})
	if err != nil {
		return 0, model.NewStorageError("count folder items", err)
	}
	return int(count), nil
}

func (r *ItemsRepo) MoveFolderItemsToRoot(ctx context.Context, userID, folderID string) error {
	_, err := r.MongoCollection.UpdateMany(ctx,
		bson.M{"user_id": userID, "folder_id": folderID},
		bson.M{"$set": bson.M{"folder_id": nil, "updated_at": time.Now()}})
	if err != nil {
		return model.NewStorageError("move folder items", err)
	}
	return nil
}

func (r *ItemsRepo) TrashFolderItems(ctx context.Context, userID, folderID string, now time.Time) error {
	_, err := r.MongoCollection.UpdateMany(ctx,
		bson.M{"user_id": userID, "folder_id": folderID, "is_trash": false},
		bson.M{"$set": bson.M{
			"is_trash":   true,
			"deleted_at": now,
			"updated_at": now,
		}})
	if err != nil {
		return model.NewStorageError("trash folder items", err)
	}
	return nil
}
