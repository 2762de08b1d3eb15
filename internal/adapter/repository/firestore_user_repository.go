package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/domain/repository"
	"b2bmarket/internal/infrastructure/live"
	"b2bmarket/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

var decodeUser = decodeWithID(func(u *entity.UserProfile, id string) { u.ID = id })

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.UserProfile) error {
	ref := r.client.Collection(usersCollection).Doc(user.ID)

	wr, err := ref.Set(ctx, user)
	if err != nil {
		return remoteError("create user", "User", user.ID, err)
	}

	user.CreatedAt = wr.UpdateTime
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	doc, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, remoteError("get user", "User", id, err)
	}

	user, err := decodeUser(doc)
	if err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	return user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	query := r.client.Collection(usersCollection).Where("email", "==", email).Limit(1)

	users, err := collect(query.Documents(ctx), decodeUser)
	if err != nil {
		return nil, remoteError("get user by email", "User", email, err)
	}
	if len(users) == 0 {
		return nil, errors.NotFound("User", nil)
	}
	return users[0], nil
}

func (r *firestoreUserRepository) UpdateSellerStatus(ctx context.Context, id string, status entity.SellerStatus) error {
	_, err := r.client.Collection(usersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "sellerStatus", Value: string(status)},
	})
	if err != nil {
		return remoteError("update seller status", "User", id, err)
	}
	return nil
}

func (r *firestoreUserRepository) Watch(ctx context.Context, id string, h live.Handler[*entity.UserProfile]) *live.Subscription {
	ref := r.client.Collection(usersCollection).Doc(id)
	return watchDocument(ctx, ref, "watch user", decodeUser, h)
}
