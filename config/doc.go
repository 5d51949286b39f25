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


// Package config loads application settings from defaults, an optional
// YAML file and EDUSEARCH_* environment variables.
//
// Example file:
//
//	log:
//	  level: debug
//	catalog:
//	  path: /var/lib/edusearch
//	lookup:
//	  timeout: 5s
//	  breaker:
//	    enabled: false
//	session:
//	  pool_size: 4
package config
