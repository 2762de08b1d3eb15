package repository

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"b2bmarket/internal/infrastructure/live"
	apperrors "b2bmarket/pkg/errors"
	"b2bmarket/pkg/logger"
)

const (
	usersCollection        = "users"
	productsCollection     = "products"
	enquiriesCollection    = "enquiries"
	requirementsCollection = "requirements"
)

// remoteError logs a failed store call and converts it for the caller.
// NotFound stays distinguishable so handlers can answer 404.
func remoteError(op, resource, subject string, err error) error {
	if status.Code(err) == codes.NotFound {
		return apperrors.NotFound(resource, err)
	}
	logger.RemoteFailure(op, subject, err)
	return apperrors.Remote(op, err)
}

type decoder[T any] func(doc *firestore.DocumentSnapshot) (T, error)

// decodeWithID builds a decoder for entities whose ID is the document id.
func decodeWithID[T any](setID func(*T, string)) decoder[*T] {
	return func(doc *firestore.DocumentSnapshot) (*T, error) {
		var v T
		if err := doc.DataTo(&v); err != nil {
			return nil, err
		}
		setID(&v, doc.Ref.ID)
		return &v, nil
	}
}

func collect[T any](it *firestore.DocumentIterator, decode decoder[T]) ([]T, error) {
	defer it.Stop()

	items := []T{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		v, err := decode(doc)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

func stopped(err error) bool {
	return err == iterator.Done ||
		errors.Is(err, context.Canceled) ||
		status.Code(err) == codes.Canceled
}

// querySource adapts a Firestore query snapshot listener.
type querySource[T any] struct {
	it     *firestore.QuerySnapshotIterator
	decode decoder[T]
	op     string
}

func (s *querySource[T]) Next() ([]T, error) {
	snap, err := s.it.Next()
	if err != nil {
		if stopped(err) {
			return nil, live.ErrStopped
		}
		logger.RemoteFailure(s.op, "snapshot", err)
		return nil, apperrors.Remote(s.op, err)
	}
	items, err := collect(snap.Documents, s.decode)
	if err != nil {
		logger.RemoteFailure(s.op, "decode", err)
		return nil, apperrors.Remote(s.op, err)
	}
	return items, nil
}

func (s *querySource[T]) Stop() {
	s.it.Stop()
}

func watchQuery[T any](ctx context.Context, q firestore.Query, op string, decode decoder[T], h live.Handler[T]) *live.Subscription {
	return live.Start(ctx, func(ctx context.Context) live.Source[T] {
		return &querySource[T]{it: q.Snapshots(ctx), decode: decode, op: op}
	}, h)
}

// documentSource adapts a single-document listener. A missing document is
// an empty snapshot.
type documentSource[T any] struct {
	it     *firestore.DocumentSnapshotIterator
	decode decoder[T]
	op     string
}

func (s *documentSource[T]) Next() ([]T, error) {
	snap, err := s.it.Next()
	if err != nil {
		if stopped(err) {
			return nil, live.ErrStopped
		}
		logger.RemoteFailure(s.op, "snapshot", err)
		return nil, apperrors.Remote(s.op, err)
	}
	if !snap.Exists() {
		return []T{}, nil
	}
	v, err := s.decode(snap)
	if err != nil {
		logger.RemoteFailure(s.op, snap.Ref.ID, err)
		return nil, apperrors.Remote(s.op, err)
	}
	return []T{v}, nil
}

func (s *documentSource[T]) Stop() {
	s.it.Stop()
}

func watchDocument[T any](ctx context.Context, ref *firestore.DocumentRef, op string, decode decoder[T], h live.Handler[T]) *live.Subscription {
	return live.Start(ctx, func(ctx context.Context) live.Source[T] {
		return &documentSource[T]{it: ref.Snapshots(ctx), decode: decode, op: op}
	}, h)
}

// optionalFloat maps a cleared price field to a field delete.
func optionalFloat(v *float64) interface{} {
	if v == nil {
		return firestore.Delete
	}
	return *v
}

// Ping reads at most one product to prove the store answers.
func Ping(ctx context.Context, client *firestore.Client) error {
	_, err := client.Collection(productsCollection).Limit(1).Documents(ctx).Next()
	if err == iterator.Done {
		return nil
	}
	return err
}
