// Package seed populates a development database with realistic data.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"bookclub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	groupNames = []string{
		"Dune Readers", "Cozy Mystery Corner", "The Classics Club",
		"Sci-Fi Saturdays", "Romance Between the Lines", "Histories Untold",
		"Poetry After Dark", "The Thriller Vault", "Fantasy Guild",
		"Nonfiction Nerds", "Short Story Society", "Midnight Book Club",
	}

	groupDescriptions = []string{
		"We read one book a month and argue about it politely.",
		"Slow readers welcome. Spoilers are a crime here.",
		"Annotated editions encouraged, strong opinions required.",
		"Deep dives into worldbuilding, one chapter at a time.",
		"A friendly corner for genre fans old and new.",
		"Weekly threads, monthly picks, zero gatekeeping.",
	}

	postTitles = []string{
		"What did everyone think of the ending?",
		"Our next pick: voting thread",
		"Favorite quote so far?",
		"Chapter 12 discussion (spoilers!)",
		"Recommendation: you have to read this one",
		"Is the film adaptation worth watching?",
		"Welcome new members - introduce yourselves",
		"This month's reading schedule",
	}

	commentBodies = []string{
		"Completely agree, that chapter wrecked me.",
		"I had the opposite reaction, honestly.",
		"Adding this to my list right now.",
		"The pacing in the middle lost me a bit.",
		"Best book we've picked all year.",
		"I did not see that twist coming.",
	}
)

// Run fills the database with users, groups, memberships, discussions,
// friendships and notifications. Existing rows are left alone; Run is meant
// for fresh development databases.
func Run(db *gorm.DB, userCount int) error {
	gofakeit.Seed(42)

	log.Printf("Seeding %d users...", userCount)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return err
	}

	users := make([]models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		users = append(users, models.User{
			Username:     gofakeit.Username(),
			Email:        gofakeit.Email(),
			PasswordHash: string(hash),
			Bio:          gofakeit.Sentence(10),
			AvatarURL:    gofakeit.ImageURL(200, 200),
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}

	groups, err := seedGroups(db, users)
	if err != nil {
		return err
	}
	if err := seedDiscussions(db, users, groups); err != nil {
		return err
	}
	if err := seedFriendships(db, users); err != nil {
		return err
	}

	log.Printf("Seeded %d users, %d groups", len(users), len(groups))
	return nil
}

func seedGroups(db *gorm.DB, users []models.User) ([]models.Group, error) {
	groups := make([]models.Group, 0, len(groupNames))
	for i, name := range groupNames {
		creator := users[i%len(users)]
		now := time.Now().Add(-time.Duration(rand.Intn(90*24)) * time.Hour)
		group := models.Group{
			Name:         name,
			Description:  groupDescriptions[i%len(groupDescriptions)],
			Category:     models.GroupCategories[rand.Intn(len(models.GroupCategories))],
			CreatorID:    creator.ID,
			ImageURL:     gofakeit.ImageURL(640, 360),
			IsActive:     true,
			LastActivity: now,
			Members: []models.GroupMember{{
				UserID:   creator.ID,
				Role:     models.GroupRoleModerator,
				JoinedAt: now,
			}},
		}
		if err := db.Create(&group).Error; err != nil {
			return nil, fmt.Errorf("seeding group %q: %w", name, err)
		}

		// A random slice of the user base joins each group.
		memberCount := 1
		for _, u := range users {
			if u.ID == creator.ID || rand.Intn(3) != 0 {
				continue
			}
			role := models.GroupRoleMember
			if rand.Intn(10) == 0 {
				role = models.GroupRoleModerator
			}
			member := models.GroupMember{
				GroupID:  group.ID,
				UserID:   u.ID,
				Role:     role,
				JoinedAt: now.Add(time.Duration(rand.Intn(48)) * time.Hour),
			}
			if err := db.Create(&member).Error; err != nil {
				return nil, err
			}
			memberCount++
		}
		if err := db.Model(&group).Update("member_count", memberCount).Error; err != nil {
			return nil, err
		}
		group.MemberCount = memberCount
		groups = append(groups, group)
	}
	return groups, nil
}

func seedDiscussions(db *gorm.DB, users []models.User, groups []models.Group) error {
	types := []models.PostType{
		models.PostTypeDiscussion, models.PostTypeRecommendation,
		models.PostTypeSuggestion, models.PostTypeAnnouncement,
	}

	for _, group := range groups {
		var members []models.GroupMember
		if err := db.Where("group_id = ?", group.ID).Find(&members).Error; err != nil {
			return err
		}
		if len(members) == 0 {
			continue
		}

		for i := 0; i < 3+rand.Intn(5); i++ {
			author := members[rand.Intn(len(members))]
			post := models.Post{
				GroupID:  group.ID,
				AuthorID: author.UserID,
				Title:    postTitles[rand.Intn(len(postTitles))],
				Content:  gofakeit.Paragraph(2, 4, 12, " "),
				Type:     types[rand.Intn(len(types))],
				IsPinned: i == 0 && rand.Intn(3) == 0,
			}
			if err := db.Create(&post).Error; err != nil {
				return err
			}

			for j := 0; j < rand.Intn(4); j++ {
				commenter := members[rand.Intn(len(members))]
				comment := models.Comment{
					PostID:   post.ID,
					AuthorID: commenter.UserID,
					Content:  commentBodies[rand.Intn(len(commentBodies))],
				}
				if err := db.Create(&comment).Error; err != nil {
					return err
				}

				// Occasionally nest a short reply chain under the comment.
				var parentID *uint
				for k := 0; k < rand.Intn(3); k++ {
					replier := members[rand.Intn(len(members))]
					reply := models.Reply{
						PostID:        post.ID,
						CommentID:     comment.ID,
						ParentReplyID: parentID,
						AuthorID:      replier.UserID,
						Content:       commentBodies[rand.Intn(len(commentBodies))],
					}
					if err := db.Create(&reply).Error; err != nil {
						return err
					}
					parentID = &reply.ID
				}
			}

			if rand.Intn(2) == 0 {
				liker := members[rand.Intn(len(members))]
				like := models.Like{
					UserID:     liker.UserID,
					TargetType: models.LikeTargetPost,
					TargetID:   post.ID,
				}
				if err := db.Create(&like).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func seedFriendships(db *gorm.DB, users []models.User) error {
	for i := range users {
		for j := i + 1; j < len(users); j++ {
			if rand.Intn(4) != 0 {
				continue
			}
			status := models.FriendshipStatusAccepted
			if rand.Intn(5) == 0 {
				status = models.FriendshipStatusPending
			}
			f := models.Friendship{
				RequesterID: users[i].ID,
				AddresseeID: users[j].ID,
				Status:      status,
			}
			if err := db.Create(&f).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
