package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/qzplatform/account-service/internal/mocks"
	"github.com/qzplatform/account-service/internal/model"
	"github.com/qzplatform/account-service/internal/testutil"
)

func TestAccount_Provision_Success(t *testing.T) {
	ctx := context.Background()
	store := &mocks.AccountStore{}
	dispatcher := &mocks.MailDispatcher{}

	store.On("GetByEmail", mock.Anything, "new@qz.test").Return(model.Account{}, model.ErrNotFound)

	var createdHash string
	store.On("Create", mock.Anything, mock.MatchedBy(func(a model.Account) bool {
		createdHash = a.PasswordHash
		return a.Email == "new@qz.test" && a.IsActive && a.PasswordHash != ""
	})).Return(model.Account{ID: uuid.New(), Name: "New User", Email: "new@qz.test", Role: "standard", IsActive: true}, nil)

	var mailedHTML string
	dispatcher.On("Enqueue", mock.Anything, mock.MatchedBy(func(msg model.MailMessage) bool {
		mailedHTML = msg.HTML
		return msg.To == "new@qz.test"
	})).Return()

	s := NewAccount(store, fakeHasher{}, dispatcher, testutil.MakeNoopLogger())

	account, err := s.Provision(ctx, model.CreateAccountParams{Name: "New User", Email: "new@qz.test", Role: "standard"})
	require.NoError(t, err)
	assert.Equal(t, "new@qz.test", account.Email)

	// The generated plaintext reaches the mail, while only its hash reaches
	// the store.
	assert.Contains(t, mailedHTML, "Temporary Password")
	assert.NotContains(t, createdHash, "Temporary")
	store.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestAccount_Provision_MissingFields(t *testing.T) {
	s := NewAccount(&mocks.AccountStore{}, fakeHasher{}, &mocks.MailDispatcher{}, testutil.MakeNoopLogger())

	_, err := s.Provision(context.Background(), model.CreateAccountParams{Email: "x@qz.test"})
	assert.ErrorIs(t, err, model.ErrMissingFields)

	_, err = s.Provision(context.Background(), model.CreateAccountParams{Name: "X"})
	assert.ErrorIs(t, err, model.ErrMissingFields)
}

func TestAccount_Provision_DuplicateEmail(t *testing.T) {
	store := &mocks.AccountStore{}
	store.On("GetByEmail", mock.Anything, "taken@qz.test").Return(model.Account{ID: uuid.New()}, nil)

	s := NewAccount(store, fakeHasher{}, &mocks.MailDispatcher{}, testutil.MakeNoopLogger())

	_, err := s.Provision(context.Background(), model.CreateAccountParams{Name: "T", Email: "taken@qz.test"})
	assert.ErrorIs(t, err, model.ErrDuplicateEmail)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccount_Provision_StoreLosesRace(t *testing.T) {
	store := &mocks.AccountStore{}
	dispatcher := &mocks.MailDispatcher{}
	store.On("GetByEmail", mock.Anything, "race@qz.test").Return(model.Account{}, model.ErrNotFound)
	store.On("Create", mock.Anything, mock.Anything).Return(model.Account{}, model.ErrDuplicateEmail)

	s := NewAccount(store, fakeHasher{}, dispatcher, testutil.MakeNoopLogger())

	_, err := s.Provision(context.Background(), model.CreateAccountParams{Name: "R", Email: "race@qz.test"})
	assert.ErrorIs(t, err, model.ErrDuplicateEmail)
	dispatcher.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}

func TestAccount_Get_NotFound(t *testing.T) {
	store := &mocks.AccountStore{}
	id := uuid.New()
	store.On("GetByID", mock.Anything, id).Return(model.Account{}, model.ErrNotFound)

	s := NewAccount(store, fakeHasher{}, &mocks.MailDispatcher{}, testutil.MakeNoopLogger())

	_, err := s.Get(context.Background(), id)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAccount_Update_MergesNonEmptyFields(t *testing.T) {
	ctx := context.Background()
	store := &mocks.AccountStore{}
	dispatcher := &mocks.MailDispatcher{}
	id := uuid.New()

	existing := model.Account{ID: id, Name: "Old Name", Email: "old@qz.test", Role: "standard", IsActive: true}
	store.On("GetByID", mock.Anything, id).Return(existing, nil)
	store.On("Save", mock.Anything, mock.MatchedBy(func(a model.Account) bool {
		// Blank params keep the stored value.
		return a.Name == "New Name" && a.Email == "old@qz.test" && a.Role == "standard"
	})).Return(model.Account{ID: id, Name: "New Name", Email: "old@qz.test", Role: "standard"}, nil)
	dispatcher.On("Enqueue", mock.Anything, mock.MatchedBy(func(msg model.MailMessage) bool {
		return msg.Subject == "Your QzPlatform Account Has Been Updated"
	})).Return()

	s := NewAccount(store, fakeHasher{}, dispatcher, testutil.MakeNoopLogger())

	updated, err := s.Update(ctx, id, model.CreateAccountParams{Name: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	store.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestAccount_Update_NotFound(t *testing.T) {
	store := &mocks.AccountStore{}
	id := uuid.New()
	store.On("GetByID", mock.Anything, id).Return(model.Account{}, model.ErrNotFound)

	s := NewAccount(store, fakeHasher{}, &mocks.MailDispatcher{}, testutil.MakeNoopLogger())

	_, err := s.Update(context.Background(), id, model.CreateAccountParams{Name: "N"})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAccount_Delete(t *testing.T) {
	store := &mocks.AccountStore{}
	id := uuid.New()
	store.On("Delete", mock.Anything, id).Return(nil)

	s := NewAccount(store, fakeHasher{}, &mocks.MailDispatcher{}, testutil.MakeNoopLogger())
	assert.NoError(t, s.Delete(context.Background(), id))
}

func TestAccount_List_StoreFailure(t *testing.T) {
	store := &mocks.AccountStore{}
	store.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

	s := NewAccount(store, fakeHasher{}, &mocks.MailDispatcher{}, testutil.MakeNoopLogger())

	_, err := s.List(context.Background())
	require.Error(t, err)
}
