// Package firestore keeps submissions in a Cloud Firestore collection.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	fstore "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"toiture-backend/internal/constants"
	"toiture-backend/internal/storage"
)

const collection = "submissions"

type Storage struct {
	client *fstore.Client
}

// New connects through the Firebase Admin SDK. An empty credentials path uses the default credentials.
func New(ctx context.Context, projectID, credentialsPath string) (*Storage, error) {
	const op = "storage.firestore.New"

	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to initialize Firebase app: %w", op, err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get Firestore client: %w", op, err)
	}

	return &Storage{client: client}, nil
}

func (s *Storage) Close() error {
	return s.client.Close()
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func (s *Storage) Submissions(ctx context.Context) ([]storage.Submission, error) {
	const op = "storage.firestore.Submissions"

	iter := s.client.Collection(collection).OrderBy("createdAt", fstore.Desc).Documents(ctx)
	defer iter.Stop()

	out := make([]storage.Submission, 0)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		var sub storage.Submission
		if err := doc.DataTo(&sub); err != nil {
			return nil, fmt.Errorf("%s: decode %s: %w", op, doc.Ref.ID, err)
		}
		sub.ID = doc.Ref.ID
		out = append(out, sub)
	}

	return out, nil
}

func (s *Storage) Submission(ctx context.Context, id string) (storage.Submission, error) {
	const op = "storage.firestore.Submission"

	doc, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return storage.Submission{}, fmt.Errorf("%s: id=%s: %w", op, id, storage.ErrSubmissionNotFound)
		}
		return storage.Submission{}, fmt.Errorf("%s: %w", op, err)
	}

	var sub storage.Submission
	if err := doc.DataTo(&sub); err != nil {
		return storage.Submission{}, fmt.Errorf("%s: decode: %w", op, err)
	}
	sub.ID = doc.Ref.ID

	return sub, nil
}

// CreateSubmission writes the whole document, replacing any previous one with the same id.
func (s *Storage) CreateSubmission(ctx context.Context, sub storage.Submission) (storage.Submission, error) {
	const op = "storage.firestore.CreateSubmission"

	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.Status == "" {
		sub.Status = constants.StatusNew
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	if _, err := s.client.Collection(collection).Doc(sub.ID).Set(ctx, sub); err != nil {
		return storage.Submission{}, fmt.Errorf("%s: %w", op, err)
	}

	return sub, nil
}

func (s *Storage) PatchSubmission(ctx context.Context, id string, patch storage.SubmissionPatch) error {
	const op = "storage.firestore.PatchSubmission"

	ref := s.client.Collection(collection).Doc(id)

	var updates []fstore.Update
	if patch.Status != nil {
		updates = append(updates, fstore.Update{Path: "status", Value: *patch.Status})
	}
	if patch.Calculs != nil {
		updates = append(updates, fstore.Update{Path: "calculs", Value: *patch.Calculs})
	}

	var err error
	if len(updates) == 0 {
		// пустой патч: только проверяем существование
		_, err = ref.Get(ctx)
	} else {
		_, err = ref.Update(ctx, updates)
	}
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%s: id=%s: %w", op, id, storage.ErrSubmissionNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) DeleteSubmission(ctx context.Context, id string) error {
	const op = "storage.firestore.DeleteSubmission"

	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
