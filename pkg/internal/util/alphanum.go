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

package util

import (
	"regexp"
	"strconv"
	"strings"
)

var chunkRegexp = regexp.MustCompile(`(\d+|\D+)`)

// AlphanumCompare compares two strings in natural order, so that numbers
// embedded in them are compared by value: "Week 2" sorts before "Week 10".
// Letters are compared case-insensitively. The result is negative, zero or
// positive like the one of strings.Compare.
func AlphanumCompare(a, b string) int {
	chunksA := chunkRegexp.FindAllString(strings.ToLower(a), -1)
	chunksB := chunkRegexp.FindAllString(strings.ToLower(b), -1)

	for i := 0; i < len(chunksA) && i < len(chunksB); i++ {
		x, y := chunksA[i], chunksB[i]

		numX, errX := strconv.Atoi(x)
		numY, errY := strconv.Atoi(y)

		switch {
		case errX == nil && errY == nil:
			if numX != numY {
				if numX < numY {
					return -1
				}
				return 1
			}

		case x != y:
			return strings.Compare(x, y)
		}
	}

	return len(chunksA) - len(chunksB)
}
