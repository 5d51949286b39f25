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


package session

import (
	"fmt"
	"log/slog"

	"github.com/panjf2000/ants/v2"
)

// antsLoggerAdapter adapts slog.Logger to the ants.Logger interface.
type antsLoggerAdapter struct {
	logger *slog.Logger
}

var _ ants.Logger = (*antsLoggerAdapter)(nil)

func (al *antsLoggerAdapter) Printf(format string, args ...any) {
	al.logger.Debug(fmt.Sprintf(format, args...))
}

// newPool creates the worker pool that runs fallback resolutions.
// A panicking resolution is logged; the session has already settled it.
func newPool(size int, logger *slog.Logger) (*ants.Pool, error) {
	return ants.NewPool(size,
		ants.WithLogger(&antsLoggerAdapter{logger: logger}),
		ants.WithPanicHandler(func(p any) {
			logger.Error("fallback resolution panicked", "panic", p)
		}),
	)
}
