package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nskopt/catalog-api/internal/core/domain"
)

const imagesCollection = "images"

// ImageRepository persists image documents in MongoDB.
type ImageRepository struct {
	coll *mongo.Collection
}

func NewImageRepository(db *mongo.Database) *ImageRepository {
	return &ImageRepository{coll: db.Collection(imagesCollection)}
}

type mongoImage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ContentType string             `bson:"content_type"`
	Data        []byte             `bson:"data"`
	SizeBytes   int64              `bson:"size_bytes"`
	CreatedAt   int64              `bson:"created_at"`
}

func (r *ImageRepository) Create(ctx context.Context, image *domain.Image) (*domain.Image, error) {
	doc := mongoImage{
		ContentType: image.ContentType,
		Data:        image.Data,
		SizeBytes:   image.SizeBytes,
		CreatedAt:   image.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert image: %w", err)
	}

	created := *image
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ImageRepository) FindByID(ctx context.Context, id string) (*domain.Image, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrImageNotFound
	}

	var mi mongoImage
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mi); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("find image: %w", err)
	}

	return &domain.Image{
		ID:          mi.ID.Hex(),
		ContentType: mi.ContentType,
		Data:        mi.Data,
		SizeBytes:   mi.SizeBytes,
		CreatedAt:   unixToTime(mi.CreatedAt),
	}, nil
}

// ExistingIDs returns the subset of ids that resolve to stored images.
// Image bytes are not loaded.
func (r *ImageRepository) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}

	cursor, err := r.coll.Find(ctx,
		bson.M{"_id": bson.M{"$in": oids}},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("find image ids: %w", err)
	}
	defer cursor.Close(ctx)

	var out []string
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode image id: %w", err)
		}
		out = append(out, doc.ID.Hex())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate image ids: %w", err)
	}
	return out, nil
}
