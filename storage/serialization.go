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


package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/edusearch/core"
)

// Record layout, in order: ordinal, id, title, description, category, type,
// level, tags, hardware, learning path. String lists are a varint length
// followed by the strings.

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	return core.ID(v), nil
}

// MarshalResource serializes a Resource together with its listing ordinal.
func MarshalResource(r *core.Resource, ordinal uint64) []byte {
	buf := make([]byte, resourceSize(r, ordinal))
	n := varint.Uint64.Marshal(ordinal, buf)
	n += varint.Uint64.Marshal(uint64(r.Id), buf[n:])
	n += ord.String.Marshal(r.Title, buf[n:])
	n += ord.String.Marshal(r.Description, buf[n:])
	n += ord.String.Marshal(string(r.Category), buf[n:])
	n += ord.String.Marshal(string(r.Type), buf[n:])
	n += ord.String.Marshal(string(r.Level), buf[n:])
	n += marshalStrings(r.Tags, buf[n:])
	n += marshalStrings(r.Hardware, buf[n:])
	marshalStrings(r.LearningPath, buf[n:])
	return buf
}

// UnmarshalResource deserializes a Resource and its listing ordinal.
func UnmarshalResource(data []byte) (*core.Resource, uint64, error) {
	d := decoder{data: data}
	ordinal := d.readUint64()
	r := &core.Resource{
		Id:          core.ID(d.readUint64()),
		Title:       d.readString(),
		Description: d.readString(),
		Category:    core.Category(d.readString()),
		Type:        core.ResourceType(d.readString()),
		Level:       core.Level(d.readString()),
	}
	r.Tags = d.readStrings()
	r.Hardware = d.readStrings()
	r.LearningPath = d.readStrings()
	if d.err != nil {
		return nil, 0, fmt.Errorf("%w: resource: %w", ErrSerializationFailed, d.err)
	}
	if d.off != len(data) {
		return nil, 0, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-d.off)
	}
	return r, ordinal, nil
}

func resourceSize(r *core.Resource, ordinal uint64) int {
	return varint.Uint64.Size(ordinal) +
		varint.Uint64.Size(uint64(r.Id)) +
		ord.String.Size(r.Title) +
		ord.String.Size(r.Description) +
		ord.String.Size(string(r.Category)) +
		ord.String.Size(string(r.Type)) +
		ord.String.Size(string(r.Level)) +
		stringsSize(r.Tags) +
		stringsSize(r.Hardware) +
		stringsSize(r.LearningPath)
}

func stringsSize(s []string) int {
	size := varint.Int.Size(len(s))
	for _, v := range s {
		size += ord.String.Size(v)
	}
	return size
}

func marshalStrings(s []string, buf []byte) int {
	n := varint.Int.Marshal(len(s), buf)
	for _, v := range s {
		n += ord.String.Marshal(v, buf[n:])
	}
	return n
}

// decoder reads fields sequentially and remembers the first error.
type decoder struct {
	data []byte
	off  int
	err  error
}

func (d *decoder) readUint64() uint64 {
	if d.err != nil {
		return 0
	}
	v, n, err := varint.Uint64.Unmarshal(d.data[d.off:])
	d.off += n
	d.err = err
	return v
}

func (d *decoder) readString() string {
	if d.err != nil {
		return ""
	}
	v, n, err := ord.String.Unmarshal(d.data[d.off:])
	d.off += n
	d.err = err
	return v
}

func (d *decoder) readStrings() []string {
	if d.err != nil {
		return nil
	}
	length, n, err := varint.Int.Unmarshal(d.data[d.off:])
	d.off += n
	if err != nil {
		d.err = err
		return nil
	}
	if length < 0 || length > len(d.data)-d.off {
		d.err = ErrTruncatedData
		return nil
	}
	if length == 0 {
		return nil
	}
	out := make([]string, 0, length)
	for range length {
		out = append(out, d.readString())
	}
	return out
}
