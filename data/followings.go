/*
Copyright 2024 - 2026 the ChatterNet authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package data

import (
	"context"

	"github.com/chatternet/chatternet-server-http-sub000/dbx"
)

// PutActorFollowing records that an actor follows another actor.
func PutActorFollowing(ctx context.Context, db DBTX, actorID, followingID string) error {
	joint, err := JointID(actorID, followingID)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO actors_followings(joint_id, actor_id, following_id) VALUES($1, $2, $3)`,
		joint,
		actorID,
		followingID,
	)
	return err
}

// DeleteActorFollowing removes one follow edge.
func DeleteActorFollowing(ctx context.Context, db DBTX, actorID, followingID string) error {
	joint, err := JointID(actorID, followingID)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(
		ctx,
		`DELETE FROM actors_followings WHERE joint_id = $1`,
		joint,
	)
	return err
}

// DeleteActorAllFollowing removes every follow edge of an actor.
func DeleteActorAllFollowing(ctx context.Context, db DBTX, actorID string) error {
	_, err := db.ExecContext(
		ctx,
		`DELETE FROM actors_followings WHERE actor_id = $1`,
		actorID,
	)
	return err
}

// GetActorFollowings returns the actors an actor follows, oldest first.
func GetActorFollowings(ctx context.Context, db DBTX, actorID string) ([]string, error) {
	return dbx.QueryCollect[string](
		ctx,
		db,
		`SELECT following_id FROM actors_followings WHERE actor_id = $1 ORDER BY idx`,
		actorID,
	)
}

// GetActorFollowers returns one page of the actors following an actor,
// newest follow first.
//
// startIdx optionally caps the page at a previous page's boundary.
// The page is nil when there are no rows left.
func GetActorFollowers(ctx context.Context, db DBTX, actorID string, count int, startIdx *int64) (*Page, error) {
	type row struct {
		Idx     int64
		ActorID string
	}

	rows, err := dbx.QueryCollectCount[row](
		ctx,
		db,
		count,
		`
		SELECT idx, actor_id FROM actors_followings
		WHERE following_id = $1 AND ($2 IS NULL OR idx <= $2)
		ORDER BY idx DESC
		LIMIT $3
		`,
		actorID,
		startIdx,
		count,
	)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	page := Page{
		Items:   make([]string, 0, len(rows)),
		LowIdx:  rows[len(rows)-1].Idx,
		HighIdx: rows[0].Idx,
	}
	for _, r := range rows {
		page.Items = append(page.Items, r.ActorID)
	}

	return &page, nil
}
