// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	sliceVB8qCE1Rac3apobQSΔ41KQΞΞ = ord.NewSliceSer[float32](varint.Float32)
	sliceajnwJJd808sO5aΣZmeΣJ3gΞΞ = ord.NewSliceSer[uint64](varint.Uint64)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var PostMUS = postMUS{}

type postMUS struct{}

func (s postMUS) Marshal(v Post, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.OriginalURL, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.HTMLContent, bs[n:])
	n += ord.String.Marshal(v.TextContent, bs[n:])
	n += ord.String.Marshal(v.Summary, bs[n:])
	n += sliceVB8qCE1Rac3apobQSΔ41KQΞΞ.Marshal(v.Vector, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s postMUS) Unmarshal(bs []byte) (v Post, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.OriginalURL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.HTMLContent, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TextContent, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = sliceVB8qCE1Rac3apobQSΔ41KQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s postMUS) Size(v Post) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.OriginalURL)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.HTMLContent)
	size += ord.String.Size(v.TextContent)
	size += ord.String.Size(v.Summary)
	size += sliceVB8qCE1Rac3apobQSΔ41KQΞΞ.Size(v.Vector)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s postMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceVB8qCE1Rac3apobQSΔ41KQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var FeedMUS = feedMUS{}

type feedMUS struct{}

func (s feedMUS) Marshal(v Feed, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Slug, bs[n:])
	n += varint.Uint64.Marshal(v.OwnerUserID, bs[n:])
	n += sliceajnwJJd808sO5aΣZmeΣJ3gΞΞ.Marshal(v.MemberUserIDs, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s feedMUS) Unmarshal(bs []byte) (v Feed, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Slug, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.OwnerUserID, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.MemberUserIDs, n1, err = sliceajnwJJd808sO5aΣZmeΣJ3gΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s feedMUS) Size(v Feed) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Slug)
	size += varint.Uint64.Size(v.OwnerUserID)
	size += sliceajnwJJd808sO5aΣZmeΣJ3gΞΞ.Size(v.MemberUserIDs)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s feedMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Uint64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceajnwJJd808sO5aΣZmeΣJ3gΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var FeedPostMUS = feedPostMUS{}

type feedPostMUS struct{}

func (s feedPostMUS) Marshal(v FeedPost, bs []byte) (n int) {
	n = IDMUS.Marshal(v.FeedId, bs)
	n += IDMUS.Marshal(v.PostId, bs[n:])
	n += varint.Uint64.Marshal(v.UserId, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
}

func (s feedPostMUS) Unmarshal(bs []byte) (v FeedPost, n int, err error) {
	v.FeedId, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.PostId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UserId, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s feedPostMUS) Size(v FeedPost) (size int) {
	size = IDMUS.Size(v.FeedId)
	size += IDMUS.Size(v.PostId)
	size += varint.Uint64.Size(v.UserId)
	return size + raw.TimeUnixMicro.Size(v.InsertedAt)
}

func (s feedPostMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Uint64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var CheckpointMUS = checkpointMUS{}

type checkpointMUS struct{}

func (s checkpointMUS) Marshal(v Checkpoint, bs []byte) (n int) {
	n = ord.String.Marshal(v.ProcessorType, bs)
	n += IDMUS.Marshal(v.LastID, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s checkpointMUS) Unmarshal(bs []byte) (v Checkpoint, n int, err error) {
	v.ProcessorType, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.LastID, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s checkpointMUS) Size(v Checkpoint) (size int) {
	size = ord.String.Size(v.ProcessorType)
	size += IDMUS.Size(v.LastID)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s checkpointMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}
