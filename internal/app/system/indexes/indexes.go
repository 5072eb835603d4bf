// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup fails fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureMembers(ctx, db); err != nil {
		problems = append(problems, "members: "+err.Error())
	}
	if err := ensureMovies(ctx, db); err != nil {
		problems = append(problems, "movies: "+err.Error())
	}
	if err := ensureSubscriptions(ctx, db); err != nil {
		problems = append(problems, "subscriptions: "+err.Error())
	}
	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func isTrue(b *bool) bool { return b != nil && *b }

// Mongo returns IndexOptionsConflict when an index with the same keys
// already exists under a different name or with different options.
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

func listExisting(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	existing := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var name string
		var unique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()
		fields := []zap.Field{
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", isTrue(unique)),
		}

		zap.L().Info("ensuring index", fields...)

		// Same key pattern, same options: reuse unless the name differs.
		// Same key pattern, different options: drop and recreate.
		if ex, ok := listExisting(ctx, coll)[sig]; ok {
			if isTrue(unique) == isTrue(ex.Unique) && (name == "" || ex.Name == name) {
				zap.L().Info("reusing existing index", append(fields, zap.Duration("took", time.Since(start)))...)
				continue
			}
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				zap.L().Warn("drop existing index failed", append(fields, zap.String("existing", ex.Name), zap.Error(err))...)
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), name, err))
				continue
			}
		}

		created, err := coll.Indexes().CreateOne(ctx, m)
		if err != nil && isOptionsConflictErr(err) {
			// Raced with another instance; drop whatever holds the key pattern and retry once.
			if ex, ok := listExisting(ctx, coll)[sig]; ok {
				if _, dropErr := coll.Indexes().DropOne(ctx, ex.Name); dropErr != nil {
					zap.L().Warn("failed to drop conflicting index", append(fields, zap.Error(dropErr))...)
				}
				created, err = coll.Indexes().CreateOne(ctx, m)
			}
		}
		if err != nil {
			zap.L().Warn("index ensure failed", append(fields, zap.Duration("took", time.Since(start)), zap.Error(err))...)
			if wafflemongo.IsDup(err) && isTrue(unique) {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), name))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			}
			continue
		}

		zap.L().Info("index ensured", append(fields,
			zap.String("created_name", created),
			zap.Duration("took", time.Since(start)))...)
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureMembers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("members"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_members_email"),
		},
		// search-by-city
		{
			Keys:    bson.D{{Key: "city_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_members_cityci__id"),
		},
	})
}

func ensureMovies(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("movies"), []mongo.IndexModel{
		// Names are unique as typed (case-sensitive).
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_movies_name"),
		},
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_movies_nameci__id"),
		},
		// multikey
		{
			Keys:    bson.D{{Key: "genres_ci", Value: 1}},
			Options: options.Index().SetName("idx_movies_genresci"),
		},
	})
}

func ensureSubscriptions(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("subscriptions"), []mongo.IndexModel{
		// One subscription per (member, movie); also serves by-member reads.
		{
			Keys:    bson.D{{Key: "member_id", Value: 1}, {Key: "movie_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_subscriptions_member_movie"),
		},
		{
			Keys:    bson.D{{Key: "movie_id", Value: 1}, {Key: "watched_date", Value: -1}},
			Options: options.Index().SetName("idx_subscriptions_movie_watched"),
		},
		{
			Keys:    bson.D{{Key: "watched_date", Value: -1}},
			Options: options.Index().SetName("idx_subscriptions_watched"),
		},
	})
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_username"),
		},
	})
}
