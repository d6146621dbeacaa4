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
	"math"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/poiesic/petplaces/core"
)

// Format versions written as the first byte of each encoding.
const (
	detailFormatVersion     byte = 1
	checkpointFormatVersion byte = 1
)

// sink receives record fields in encoding order. It is implemented by a sizer
// and an encoder so one field walk serves both passes.
type sink interface {
	byte(v byte)
	string(v string)
	int(v int)
	float(v float64)
	bool(v bool)
}

type sizer struct{ n int }

func (s *sizer) byte(byte)       { s.n++ }
func (s *sizer) string(v string) { s.n += ord.String.Size(v) }
func (s *sizer) int(v int)       { s.n += varint.Int.Size(v) }
func (s *sizer) float(v float64) { s.n += varint.Uint64.Size(math.Float64bits(v)) }
func (s *sizer) bool(v bool)     { s.n += ord.Bool.Size(v) }

type encoder struct {
	bs []byte
	n  int
}

func (e *encoder) byte(v byte) {
	e.bs[e.n] = v
	e.n++
}

func (e *encoder) string(v string) { e.n += ord.String.Marshal(v, e.bs[e.n:]) }
func (e *encoder) int(v int)       { e.n += varint.Int.Marshal(v, e.bs[e.n:]) }
func (e *encoder) float(v float64) { e.n += varint.Uint64.Marshal(math.Float64bits(v), e.bs[e.n:]) }
func (e *encoder) bool(v bool)     { e.n += ord.Bool.Marshal(v, e.bs[e.n:]) }

func encode(walk func(sink)) []byte {
	var s sizer
	walk(&s)
	e := &encoder{bs: make([]byte, s.n)}
	walk(e)
	return e.bs
}

func writeStrings(s sink, v []string) {
	s.int(len(v))
	for _, str := range v {
		s.string(str)
	}
}

type decoder struct {
	bs  []byte
	n   int
	err error
}

func (d *decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *decoder) byte() byte {
	if d.err != nil {
		return 0
	}
	if d.n >= len(d.bs) {
		d.fail(ErrTruncatedData)
		return 0
	}
	v := d.bs[d.n]
	d.n++
	return v
}

func (d *decoder) string() string {
	if d.err != nil {
		return ""
	}
	v, n, err := ord.String.Unmarshal(d.bs[d.n:])
	d.n += n
	d.fail(err)
	return v
}

func (d *decoder) int() int {
	if d.err != nil {
		return 0
	}
	v, n, err := varint.Int.Unmarshal(d.bs[d.n:])
	d.n += n
	d.fail(err)
	return v
}

func (d *decoder) float() float64 {
	if d.err != nil {
		return 0
	}
	v, n, err := varint.Uint64.Unmarshal(d.bs[d.n:])
	d.n += n
	d.fail(err)
	return math.Float64frombits(v)
}

func (d *decoder) bool() bool {
	if d.err != nil {
		return false
	}
	v, n, err := ord.Bool.Unmarshal(d.bs[d.n:])
	d.n += n
	d.fail(err)
	return v
}

// length reads a collection length. Every element takes at least one byte,
// so a length beyond the remaining input means the data was cut short.
func (d *decoder) length() int {
	l := d.int()
	if d.err != nil {
		return 0
	}
	if l < 0 || l > len(d.bs)-d.n {
		d.fail(ErrTruncatedData)
		return 0
	}
	return l
}

func (d *decoder) strings() []string {
	l := d.length()
	if l == 0 {
		return nil
	}
	out := make([]string, 0, l)
	for range l {
		out = append(out, d.string())
	}
	return out
}

func (d *decoder) version(want byte) {
	if len(d.bs) == 0 {
		d.fail(ErrTruncatedData)
		return
	}
	if got := d.byte(); got != want {
		d.fail(fmt.Errorf("unsupported format version %d", got))
	}
}

func (d *decoder) result() error {
	if d.err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrSerializationFailed, d.err)
}

func writePlaceDetail(s sink, d *core.PlaceDetail) {
	s.byte(detailFormatVersion)
	s.string(d.PlaceID)
	s.string(d.Name)
	s.string(d.FormattedAddress)
	s.string(d.Vicinity)
	s.bool(d.Location != nil)
	if d.Location != nil {
		s.float(d.Location.Lat)
		s.float(d.Location.Lng)
	}
	s.string(d.FormattedPhone)
	s.string(d.InternationalPhone)
	s.string(d.BusinessStatus)
	writeStrings(s, d.WeekdayText)
	s.int(len(d.Photos))
	for _, p := range d.Photos {
		s.string(p.Reference)
		s.int(p.Width)
		s.int(p.Height)
	}
	writeStrings(s, d.Types)
	s.float(d.Rating)
	s.int(d.RatingCount)
	s.string(d.Website)
}

// MarshalPlaceDetail serializes a PlaceDetail to bytes.
func MarshalPlaceDetail(detail *core.PlaceDetail) []byte {
	return encode(func(s sink) { writePlaceDetail(s, detail) })
}

// UnmarshalPlaceDetail deserializes a PlaceDetail from bytes.
func UnmarshalPlaceDetail(data []byte) (*core.PlaceDetail, error) {
	d := &decoder{bs: data}
	d.version(detailFormatVersion)

	detail := &core.PlaceDetail{
		PlaceID:          d.string(),
		Name:             d.string(),
		FormattedAddress: d.string(),
		Vicinity:         d.string(),
	}
	if d.bool() {
		detail.Location = &core.Coordinate{Lat: d.float(), Lng: d.float()}
	}
	detail.FormattedPhone = d.string()
	detail.InternationalPhone = d.string()
	detail.BusinessStatus = d.string()
	detail.WeekdayText = d.strings()
	if n := d.length(); n > 0 {
		detail.Photos = make([]core.Photo, 0, n)
		for range n {
			detail.Photos = append(detail.Photos, core.Photo{
				Reference: d.string(),
				Width:     d.int(),
				Height:    d.int(),
			})
		}
	}
	detail.Types = d.strings()
	detail.Rating = d.float()
	detail.RatingCount = d.int()
	detail.Website = d.string()

	if err := d.result(); err != nil {
		return nil, err
	}
	return detail, nil
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	return encode(func(s sink) {
		s.byte(checkpointFormatVersion)
		s.string(checkpoint.Name)
		s.string(checkpoint.Position)
		s.int(checkpoint.Completed)
		s.int(int(checkpoint.UpdatedAt.UnixMicro()))
	})
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	d := &decoder{bs: data}
	d.version(checkpointFormatVersion)
	checkpoint := &core.Checkpoint{
		Name:      d.string(),
		Position:  d.string(),
		Completed: d.int(),
	}
	checkpoint.UpdatedAt = time.UnixMicro(int64(d.int())).UTC()
	if err := d.result(); err != nil {
		return nil, err
	}
	return checkpoint, nil
}
