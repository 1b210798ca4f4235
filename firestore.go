package kontenbot

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Document is one stored record with its key.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// DocumentStore is the key-addressed persistence the bot manages content in.
// Writes are merges: fields absent from the write keep their stored value.
type DocumentStore interface {
	Get(ctx context.Context, collection, docID string) (map[string]interface{}, bool, error)
	SetMerge(ctx context.Context, collection, docID string, data map[string]interface{}) error
	Delete(ctx context.Context, collection, docID string) error
	Add(ctx context.Context, collection string, data map[string]interface{}) (string, error)
	ListRecent(ctx context.Context, collection, orderBy string, limit int) ([]Document, error)
	ServerTimestamp() interface{}
}

type firestoreStore struct {
	client *firestore.Client
}

func newFirestoreStore(ctx context.Context, credentialJSON []byte) (*firestoreStore, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(credentialJSON))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore client: %w", err)
	}

	return &firestoreStore{client: client}, nil
}

func (fs *firestoreStore) Get(ctx context.Context, collection, docID string) (map[string]interface{}, bool, error) {
	snap, err := fs.client.Collection(collection).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	if !snap.Exists() {
		return nil, false, nil
	}
	return snap.Data(), true, nil
}

func (fs *firestoreStore) SetMerge(ctx context.Context, collection, docID string, data map[string]interface{}) error {
	_, err := fs.client.Collection(collection).Doc(docID).Set(ctx, data, firestore.MergeAll)
	return err
}

func (fs *firestoreStore) Delete(ctx context.Context, collection, docID string) error {
	_, err := fs.client.Collection(collection).Doc(docID).Delete(ctx)
	return err
}

func (fs *firestoreStore) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	ref, _, err := fs.client.Collection(collection).Add(ctx, data)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (fs *firestoreStore) ListRecent(ctx context.Context, collection, orderBy string, limit int) ([]Document, error) {
	iter := fs.client.Collection(collection).OrderBy(orderBy, firestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	docs := make([]Document, 0, limit)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (fs *firestoreStore) ServerTimestamp() interface{} {
	return firestore.ServerTimestamp
}

func (fs *firestoreStore) Close() error {
	return fs.client.Close()
}
