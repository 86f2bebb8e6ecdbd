package repository

import (
	"context"
	"testing"
	"time"

	"bookclub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupMember{},
		&models.Post{},
		&models.Comment{},
		&models.Reply{},
		&models.Like{},
		&models.Friendship{},
		&models.Invitation{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@e.com", PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestGroupRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	creator := seedUser(t, db, "creator")
	joiner := seedUser(t, db, "joiner")

	t.Run("Create and GetByID", func(t *testing.T) {
		group := &models.Group{
			Name:      "Dune Readers",
			Category:  "Science Fiction",
			CreatorID: creator.ID,
			Members: []models.GroupMember{
				{UserID: creator.ID, Role: models.GroupRoleModerator, JoinedAt: time.Now()},
			},
			MemberCount:  1,
			LastActivity: time.Now(),
		}
		err := repo.Create(ctx, group)
		require.NoError(t, err)
		assert.NotZero(t, group.ID)

		fetched, err := repo.GetByID(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune Readers", fetched.Name)
		require.Len(t, fetched.Members, 1)
		assert.Equal(t, creator.ID, fetched.Members[0].ResolvedUserID())
		require.NotNil(t, fetched.Members[0].User)
		assert.Equal(t, "creator", fetched.Members[0].User.Username)
	})

	t.Run("GetByName is case-insensitive", func(t *testing.T) {
		found, err := repo.GetByName(ctx, "dune READERS")
		require.NoError(t, err)
		assert.Equal(t, "Dune Readers", found.Name)

		_, err = repo.GetByName(ctx, "nope")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("List filters by category", func(t *testing.T) {
		other := &models.Group{Name: "Poetry After Dark", Category: "Poetry", CreatorID: creator.ID}
		require.NoError(t, repo.Create(ctx, other))

		groups, total, err := repo.List(ctx, ListGroupsParams{Category: "Poetry", Sort: GroupSortRecent, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, groups, 1)
		assert.Equal(t, "Poetry After Dark", groups[0].Name)
	})

	t.Run("Popular orders by member count", func(t *testing.T) {
		big := &models.Group{Name: "Fantasy Guild", Category: "Fantasy", CreatorID: creator.ID, MemberCount: 99}
		require.NoError(t, repo.Create(ctx, big))

		groups, err := repo.Popular(ctx, 2)
		require.NoError(t, err)
		require.NotEmpty(t, groups)
		assert.Equal(t, "Fantasy Guild", groups[0].Name)
	})

	t.Run("Featured requires minimum members", func(t *testing.T) {
		groups, err := repo.Featured(ctx, 50, 3)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, "Fantasy Guild", groups[0].Name)
	})

	t.Run("AddMember and ListMembers", func(t *testing.T) {
		group, err := repo.GetByName(ctx, "Dune Readers")
		require.NoError(t, err)

		err = repo.AddMember(ctx, &models.GroupMember{
			GroupID:  group.ID,
			UserID:   joiner.ID,
			Role:     models.GroupRoleMember,
			JoinedAt: time.Now(),
		})
		require.NoError(t, err)

		members, err := repo.ListMembers(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, creator.ID, members[0].ResolvedUserID())
		assert.Equal(t, joiner.ID, members[1].ResolvedUserID())
	})

	t.Run("SetMemberRole", func(t *testing.T) {
		group, err := repo.GetByName(ctx, "Dune Readers")
		require.NoError(t, err)

		err = repo.SetMemberRole(ctx, group.ID, joiner.ID, models.GroupRoleModerator)
		require.NoError(t, err)

		members, err := repo.ListMembers(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, models.GroupRoleModerator, members[1].Role)
	})

	t.Run("ReplaceMembers rewrites the roster", func(t *testing.T) {
		group, err := repo.GetByName(ctx, "Dune Readers")
		require.NoError(t, err)

		err = repo.ReplaceMembers(ctx, group.ID, []models.GroupMember{
			{UserID: creator.ID, Role: models.GroupRoleModerator, JoinedAt: time.Now()},
		})
		require.NoError(t, err)

		members, err := repo.ListMembers(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, creator.ID, members[0].ResolvedUserID())
		assert.Equal(t, group.ID, members[0].GroupID)
	})

	t.Run("RemoveMember", func(t *testing.T) {
		group, err := repo.GetByName(ctx, "Dune Readers")
		require.NoError(t, err)

		require.NoError(t, repo.AddMember(ctx, &models.GroupMember{GroupID: group.ID, UserID: joiner.ID, JoinedAt: time.Now()}))
		require.NoError(t, repo.RemoveMember(ctx, group.ID, joiner.ID))

		members, err := repo.ListMembers(ctx, group.ID)
		require.NoError(t, err)
		assert.Len(t, members, 1)
	})

	t.Run("UpdateStats", func(t *testing.T) {
		group, err := repo.GetByName(ctx, "Dune Readers")
		require.NoError(t, err)

		at := time.Now().Add(time.Hour)
		require.NoError(t, repo.UpdateStats(ctx, group.ID, 7, at))

		fetched, err := repo.GetByID(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, fetched.MemberCount)
		assert.WithinDuration(t, at, fetched.LastActivity, time.Second)
	})
}
