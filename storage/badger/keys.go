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


package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/edusearch/core"
)

const (
	resourceRecordPrefix = "resrec"
	resourceOrderPrefix  = "resord"
	resourceOrderSeq     = "resordseq"
)

// makeResourceKey generates a key for a resource by ID.
func makeResourceKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", resourceRecordPrefix, id))
}

// makeResourceOrderKey generates a key for the listing-order index.
// Format: prefix:ordinal
func makeResourceOrderKey(ordinal uint64) []byte {
	prefix := []byte(resourceOrderPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// BigEndian so lexicographic order matches numeric order
	binary.BigEndian.PutUint64(buf[offset:], ordinal)
	return buf
}

// resourceOrderScanPrefix is the iteration prefix of the order index.
func resourceOrderScanPrefix() []byte {
	return []byte(resourceOrderPrefix + ":")
}
