package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	conversationdomain "github.com/amir-akbari361/khuchi/internal/conversation/domain"
	conversationrepository "github.com/amir-akbari361/khuchi/internal/conversation/repository"
	usagelogdomain "github.com/amir-akbari361/khuchi/internal/usagelog/domain"
	usagelogrepository "github.com/amir-akbari361/khuchi/internal/usagelog/repository"
	"github.com/amir-akbari361/khuchi/internal/user/domain"
	"github.com/amir-akbari361/khuchi/internal/user/repository"
	pkgdb "github.com/amir-akbari361/khuchi/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&usagelogdomain.UsageLog{},
		&conversationdomain.Conversation{},
	))
	return db
}

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewService(ServiceParam{
		DB:               db,
		Log:              zap.NewNop(),
		Repo:             repository.Provide(),
		UsageRepo:        usagelogrepository.Provide(),
		ConversationRepo: conversationrepository.Provide(),
	})
	return svc, db
}

func strptr(s string) *string { return &s }

func TestCreateAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.UpsertUserRequest{
		TelegramID:  1001,
		Username:    strptr("student_one"),
		FirstName:   strptr("Amir"),
		StudentCode: "4022020030",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.Get(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "4022020030", got.StudentCode)
	require.NotNil(t, got.Username)
	assert.Equal(t, "student_one", *got.Username)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateDuplicateTelegramID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.UpsertUserRequest{
		TelegramID:  1002,
		StudentCode: "4022020031",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.UpsertUserRequest{
		TelegramID:  1002,
		StudentCode: "9999999999",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgdb.ErrConstraintViolation)

	// The original row is untouched by the failed insert.
	got, err := svc.Get(ctx, 1002)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "4022020031", got.StudentCode)
}

func TestCreateRequiresStudentCode(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), domain.UpsertUserRequest{
		TelegramID:  1003,
		StudentCode: "   ",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgdb.ErrConstraintViolation)
}

func TestGetMissingUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), 404404)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgdb.ErrNotFound)

	_, err = svc.GetByStudentCode(context.Background(), "0000000000")
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgdb.ErrNotFound)
}

func TestUpsertAdvancesUpdatedAt(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Upsert(ctx, domain.UpsertUserRequest{
		TelegramID:  1004,
		Username:    strptr("before"),
		StudentCode: "4022020032",
	})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	updated, err := svc.Upsert(ctx, domain.UpsertUserRequest{
		TelegramID:  1004,
		Username:    strptr("after"),
		StudentCode: "4022020032",
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	require.NotNil(t, updated.Username)
	assert.Equal(t, "after", *updated.Username)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt),
		"updated_at must advance on every profile write")
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
}

func TestListPaginatesNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		_, err := svc.Create(ctx, domain.UpsertUserRequest{
			TelegramID:  2000 + i,
			StudentCode: "402202010" + string(rune('0'+i)),
		})
		require.NoError(t, err)
		time.Sleep(20 * time.Millisecond)
	}

	resp, err := svc.List(ctx, domain.ListUsersRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Users, 3)
	assert.False(t, resp.HasMore)
	assert.Equal(t, int64(2003), resp.Users[0].TelegramID)
	assert.Equal(t, int64(2001), resp.Users[2].TelegramID)

	first, err := svc.List(ctx, listRequest("", 2))
	require.NoError(t, err)
	require.Len(t, first.Users, 2)
	assert.True(t, first.HasMore)
	require.NotEmpty(t, first.NextPageToken)

	second, err := svc.List(ctx, listRequest(first.NextPageToken, 2))
	require.NoError(t, err)
	require.Len(t, second.Users, 1)
	assert.False(t, second.HasMore)
	assert.Equal(t, int64(2001), second.Users[0].TelegramID)
}

func listRequest(token string, size int) domain.ListUsersRequest {
	req := domain.ListUsersRequest{}
	req.PageToken = token
	req.PageSize = size
	return req
}

func TestDeleteLeavesDependentRows(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.UpsertUserRequest{
		TelegramID:  3001,
		StudentCode: "4022020040",
	})
	require.NoError(t, err)

	usageRepo := usagelogrepository.Provide()
	require.NoError(t, usageRepo.Insert(ctx, db, &usagelogdomain.UsageLog{
		TelegramID: 3001,
		CreatedAt:  time.Now(),
	}))
	convRepo := conversationrepository.Provide()
	require.NoError(t, convRepo.Upsert(ctx, db, &conversationdomain.Conversation{
		TelegramID: 3001,
		Messages:   []byte(`[]`),
		UpdatedAt:  time.Now(),
	}))

	require.NoError(t, svc.Delete(ctx, 3001))

	_, err = svc.Get(ctx, 3001)
	assert.ErrorIs(t, err, pkgdb.ErrNotFound)

	// No cascade in the schema; dependents survive a plain delete.
	count, err := usageRepo.CountSince(ctx, db, 3001, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	conv, err := convRepo.FindByTelegramID(ctx, db, 3001)
	require.NoError(t, err)
	assert.NotNil(t, conv)
}

func TestDeleteCascadeRemovesDependentRows(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.UpsertUserRequest{
		TelegramID:  3002,
		StudentCode: "4022020041",
	})
	require.NoError(t, err)

	usageRepo := usagelogrepository.Provide()
	require.NoError(t, usageRepo.Insert(ctx, db, &usagelogdomain.UsageLog{
		TelegramID: 3002,
		CreatedAt:  time.Now(),
	}))
	convRepo := conversationrepository.Provide()
	require.NoError(t, convRepo.Upsert(ctx, db, &conversationdomain.Conversation{
		TelegramID: 3002,
		Messages:   []byte(`[]`),
		UpdatedAt:  time.Now(),
	}))

	require.NoError(t, svc.DeleteCascade(ctx, 3002))

	_, err = svc.Get(ctx, 3002)
	assert.ErrorIs(t, err, pkgdb.ErrNotFound)
	count, err := usageRepo.CountSince(ctx, db, 3002, time.Time{})
	require.NoError(t, err)
	assert.Zero(t, count)
	conv, err := convRepo.FindByTelegramID(ctx, db, 3002)
	require.NoError(t, err)
	assert.Nil(t, conv)
}
