// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateResource validates a Resource according to domain rules.
//
// Validation rules:
//   - Id must be positive
//   - Title, Category and Type must not be empty
//   - Level must be Beginner, Intermediate or Advanced
//
// NOT validated:
//   - Description (may be empty)
//   - Tags, Hardware, LearningPath (may be empty, duplicates allowed)
func ValidateResource(r *Resource) error {
	if r == nil {
		return fmt.Errorf("%w: resource is nil", ErrInvalidResource)
	}

	if r.Id == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidResource, ErrInvalidID)
	}

	if r.Title == "" {
		return fmt.Errorf("%w: id %d: %w", ErrInvalidResource, r.Id, ErrEmptyTitle)
	}

	if r.Category == "" {
		return fmt.Errorf("%w: id %d: %w", ErrInvalidResource, r.Id, ErrEmptyCategory)
	}

	if r.Type == "" {
		return fmt.Errorf("%w: id %d: %w", ErrInvalidResource, r.Id, ErrEmptyType)
	}

	if err := ValidateLevel(r.Level); err != nil {
		return fmt.Errorf("%w: id %d: %w", ErrInvalidResource, r.Id, err)
	}

	return nil
}

// ValidateCorpus validates every resource and checks that IDs are unique.
func ValidateCorpus(records []Resource) error {
	seen := make(map[ID]struct{}, len(records))
	for i := range records {
		if err := ValidateResource(&records[i]); err != nil {
			return err
		}
		if _, dup := seen[records[i].Id]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateID, records[i].Id)
		}
		seen[records[i].Id] = struct{}{}
	}
	return nil
}

// ValidateLevel validates that a Level is one of the closed set.
func ValidateLevel(level Level) error {
	for _, l := range Levels {
		if level == l {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidLevel, string(level))
}
