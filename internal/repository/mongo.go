// mongo.go — реализация Record Store поверх MongoDB.
// Коллекции: audioFiles (аудиообразцы) и audio_generations (генерации).
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bigkaa/panelvoices/internal/domain/model"
)

// Имена коллекций MongoDB.
const (
	AudioCollection      = "audioFiles"
	GenerationCollection = "audio_generations"
)

// audioDoc — BSON-представление AudioRecord.
type audioDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Filename     string             `bson:"filename"`
	OriginalName string             `bson:"originalName"`
	URL          string             `bson:"url"`
	Language     string             `bson:"language"`
	UploadedAt   time.Time          `bson:"uploadedAt"`
}

func (d *audioDoc) toModel() *model.AudioRecord {
	return &model.AudioRecord{
		ID:           d.ID.Hex(),
		Filename:     d.Filename,
		OriginalName: d.OriginalName,
		StoragePath:  d.URL,
		Language:     model.Language(d.Language),
		UploadedAt:   d.UploadedAt.UTC(),
	}
}

// generationDoc — BSON-представление GenerationRecord.
type generationDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	Voice     string             `bson:"voice"`
	Language  string             `bson:"language"`
	AudioURL  string             `bson:"audioUrl"`
	CreatedAt time.Time          `bson:"createdAt"`
	TextHash  string             `bson:"textHash"`
}

func (d *generationDoc) toModel() *model.GenerationRecord {
	return &model.GenerationRecord{
		ID:        d.ID.Hex(),
		Text:      d.Text,
		Voice:     d.Voice,
		Language:  d.Language,
		AudioURL:  d.AudioURL,
		CreatedAt: d.CreatedAt.UTC(),
		TextHash:  d.TextHash,
	}
}

// mongoStore — реализация Store через mongo-driver.
type mongoStore struct {
	audio       *mongo.Collection
	generations *mongo.Collection
}

// NewMongoStore создаёт Record Store на MongoDB.
func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{
		audio:       db.Collection(AudioCollection),
		generations: db.Collection(GenerationCollection),
	}
}

// EnsureMongoIndexes создаёт индексы коллекций (идемпотентно).
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(AudioCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "language", Value: 1}, {Key: "uploadedAt", Value: -1}},
	}); err != nil {
		return fmt.Errorf("ошибка создания индекса %s: %w", AudioCollection, err)
	}

	if _, err := db.Collection(GenerationCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "text", Value: 1}, {Key: "voice", Value: 1}, {Key: "language", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("ошибка создания индексов %s: %w", GenerationCollection, err)
	}
	return nil
}

// InsertAudio вставляет документ в audioFiles. ID — ObjectID.
func (r *mongoStore) InsertAudio(ctx context.Context, rec *model.AudioRecord) (string, error) {
	doc := audioDoc{
		Filename:     rec.Filename,
		OriginalName: rec.OriginalName,
		URL:          rec.StoragePath,
		Language:     string(rec.Language),
		UploadedAt:   rec.UploadedAt,
	}

	res, err := r.audio.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("ошибка вставки аудиозаписи: %w", err)
	}
	return objectIDHex(res.InsertedID), nil
}

// FindAudioByLanguage возвращает самую свежую запись языка.
func (r *mongoStore) FindAudioByLanguage(ctx context.Context, lang model.Language) (*model.AudioRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "uploadedAt", Value: -1}, {Key: "_id", Value: -1}})

	var doc audioDoc
	err := r.audio.FindOne(ctx, bson.M{"language": string(lang)}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска аудио по языку: %w", err)
	}
	return doc.toModel(), nil
}

// ListAudio возвращает все аудиозаписи, новые первыми.
func (r *mongoStore) ListAudio(ctx context.Context) ([]*model.AudioRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := r.audio.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка аудио: %w", err)
	}
	defer cur.Close(ctx)

	result := make([]*model.AudioRecord, 0)
	for cur.Next(ctx) {
		var doc audioDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("ошибка декодирования аудиозаписи: %w", err)
		}
		result = append(result, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации курсора: %w", err)
	}
	return result, nil
}

// CountAudioByLanguage считает аудиозаписи по языкам агрегацией $group.
func (r *mongoStore) CountAudioByLanguage(ctx context.Context) (model.LanguageCounts, error) {
	var counts model.LanguageCounts

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$language"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cur, err := r.audio.Aggregate(ctx, pipeline)
	if err != nil {
		return counts, fmt.Errorf("ошибка подсчёта аудио по языкам: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			Language string `bson:"_id"`
			Count    int    `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return counts, fmt.Errorf("ошибка декодирования счётчика: %w", err)
		}
		counts.Add(model.Language(row.Language), row.Count)
	}
	if err := cur.Err(); err != nil {
		return counts, fmt.Errorf("ошибка итерации курсора: %w", err)
	}
	return counts, nil
}

// InsertGeneration вставляет документ в audio_generations.
func (r *mongoStore) InsertGeneration(ctx context.Context, rec *model.GenerationRecord) (string, error) {
	doc := generationDoc{
		Text:      rec.Text,
		Voice:     rec.Voice,
		Language:  rec.Language,
		AudioURL:  rec.AudioURL,
		CreatedAt: rec.CreatedAt,
		TextHash:  rec.TextHash,
	}

	res, err := r.generations.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("ошибка вставки генерации: %w", err)
	}
	return objectIDHex(res.InsertedID), nil
}

// FindGeneration ищет генерацию по точному совпадению (text, voice, language).
func (r *mongoStore) FindGeneration(ctx context.Context, key model.GenerationKey) (*model.GenerationRecord, error) {
	filter := bson.M{"text": key.Text, "voice": key.Voice, "language": key.Language}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	var doc generationDoc
	if err := r.generations.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска генерации: %w", err)
	}
	return doc.toModel(), nil
}

// ListGenerations возвращает генерации по фильтру, новые первыми.
func (r *mongoStore) ListGenerations(ctx context.Context, filter model.GenerationFilter) ([]*model.GenerationRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(filter.Limit))

	cur, err := r.generations.Find(ctx, buildGenerationFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка генераций: %w", err)
	}
	defer cur.Close(ctx)

	result := make([]*model.GenerationRecord, 0)
	for cur.Next(ctx) {
		var doc generationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("ошибка декодирования генерации: %w", err)
		}
		result = append(result, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации курсора: %w", err)
	}
	return result, nil
}

// buildGenerationFilter строит BSON-фильтр списка генераций.
func buildGenerationFilter(filter model.GenerationFilter) bson.M {
	m := bson.M{}
	if filter.Language != "" {
		m["language"] = filter.Language
	}
	if filter.Voice != "" {
		m["voice"] = filter.Voice
	}
	return m
}

// objectIDHex приводит InsertedID к строке.
func objectIDHex(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}
