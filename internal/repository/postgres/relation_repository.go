package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/GuranshBedi/Backendd/internal/domain"
)

// RelationRepository stores likes and subscriptions in one table keyed by
// (actor_id, target_kind, target_id).
type RelationRepository struct {
	conn
}

func NewRelationRepository(db DB) *RelationRepository {
	return &RelationRepository{conn: newConn(db, 0)}
}

func (r *RelationRepository) Create(ctx context.Context, relation *domain.Relation) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO relations (id, actor_id, target_kind, target_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (actor_id, target_kind, target_id) DO NOTHING
		RETURNING id
	`

	if relation.ID == uuid.Nil {
		relation.ID = uuid.New()
	}
	relation.CreatedAt = time.Now()

	err := r.db.QueryRow(ctx, query,
		relation.ID,
		relation.ActorID,
		string(relation.TargetKind),
		relation.TargetID,
		relation.CreatedAt,
	).Scan(&relation.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("create relation %s: %w", relation.Key(), domain.ErrConflict)
	}
	return classify("create relation", err)
}

func (r *RelationRepository) Delete(ctx context.Context, key domain.RelationKey) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM relations WHERE actor_id = $1 AND target_kind = $2 AND target_id = $3`
	tag, err := r.db.Exec(ctx, query, key.ActorID, string(key.Kind), key.TargetID)
	if err != nil {
		return false, classify("delete relation", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RelationRepository) Exists(ctx context.Context, key domain.RelationKey) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT EXISTS (SELECT 1 FROM relations WHERE actor_id = $1 AND target_kind = $2 AND target_id = $3)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, key.ActorID, string(key.Kind), key.TargetID).Scan(&exists); err != nil {
		return false, classify("relation exists", err)
	}
	return exists, nil
}

func (r *RelationRepository) count(ctx context.Context, op, query string, args ...any) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, classify(op, err)
	}
	return n, nil
}

func (r *RelationRepository) CountByTarget(ctx context.Context, kind domain.TargetKind, targetID uuid.UUID) (int, error) {
	return r.count(ctx, "count relations by target",
		`SELECT COUNT(*) FROM relations WHERE target_kind = $1 AND target_id = $2`, string(kind), targetID)
}

func (r *RelationRepository) CountByActor(ctx context.Context, actorID uuid.UUID, kind domain.TargetKind) (int, error) {
	return r.count(ctx, "count relations by actor",
		`SELECT COUNT(*) FROM relations WHERE actor_id = $1 AND target_kind = $2`, actorID, string(kind))
}

func (r *RelationRepository) CountVideoLikesByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	return r.count(ctx, "count video likes",
		`SELECT COUNT(*) FROM relations r
		 JOIN videos v ON v.id = r.target_id
		 WHERE r.target_kind = 'video' AND v.owner_id = $1`, ownerID)
}

func (r *RelationRepository) listMembers(ctx context.Context, op, query string, id uuid.UUID) ([]*domain.ChannelMember, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	members := make([]*domain.ChannelMember, 0)
	for rows.Next() {
		m := &domain.ChannelMember{}
		if err := rows.Scan(&m.UserID, &m.Username, &m.FullName, &m.Avatar, &m.SubscribedAt); err != nil {
			return nil, classify(op, err)
		}
		members = append(members, m)
	}
	return members, classify(op, rows.Err())
}

func (r *RelationRepository) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*domain.ChannelMember, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar, r.created_at
		FROM relations r
		JOIN users u ON u.id = r.actor_id
		WHERE r.target_kind = 'channel' AND r.target_id = $1
		ORDER BY r.created_at ASC
	`
	return r.listMembers(ctx, "list subscribers", query, channelID)
}

func (r *RelationRepository) ListSubscriptions(ctx context.Context, actorID uuid.UUID) ([]*domain.ChannelMember, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar, r.created_at
		FROM relations r
		JOIN users u ON u.id = r.target_id
		WHERE r.target_kind = 'channel' AND r.actor_id = $1
		ORDER BY r.created_at ASC
	`
	return r.listMembers(ctx, "list subscriptions", query, actorID)
}

// ListLikedVideos joins against videos, so likes on deleted videos drop out.
func (r *RelationRepository) ListLikedVideos(ctx context.Context, actorID uuid.UUID) ([]*domain.Video, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + videoColumnsPrefixed + `
		FROM relations r
		JOIN videos v ON v.id = r.target_id
		WHERE r.target_kind = 'video' AND r.actor_id = $1
		ORDER BY r.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, actorID)
	if err != nil {
		return nil, classify("list liked videos", err)
	}
	defer rows.Close()
	return collectVideos(rows)
}
