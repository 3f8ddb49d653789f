// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package schedule

import (
	"context"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/rodeo/pkg/tournament/graph"
)

// Auto tries the Greedy scheduler on a copy of the graph first, and falls
// back to Backtracking if the greedy pass stalls or leaves matches which do
// not fit in the requested turns.
type Auto struct {
	Fallback Backtracking
}

var _ Scheduler = (*Auto)(nil)

func (auto *Auto) Schedule(ctx context.Context, g *graph.Graph, capacity, turns int) (Schedule, error) {
	if err := checkParameters(capacity, turns); err != nil {
		return nil, err
	}

	attempt := g.Clone()
	schedule, err := (&Greedy{}).Schedule(ctx, attempt, capacity, turns)
	if err == nil && attempt.Empty() {
		drain(g, schedule)
		return schedule, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	logrus.WithFields(logrus.Fields{
		"error":     err,
		"remaining": attempt.Size(),
	}).Debug("Greedy scheduling failed, falling back to backtracking")

	return auto.Fallback.Schedule(ctx, g, capacity, turns)
}
