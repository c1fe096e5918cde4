package media

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

var (
	ErrUnsupported = errors.New("media: unsupported content")
	ErrNoDuration  = errors.New("media: duration not available")
)

// Info describes sniffed upload content.
type Info struct {
	MimeType  string
	Extension string
	Kind      Kind
	Duration  time.Duration
}

// Sniff detects the media type of r, which is left positioned at its start.
// Only images and videos are accepted. Videos in ISO base media containers
// (MP4, MOV, M4V) also report their duration; other videos report zero.
func Sniff(r io.ReadSeeker) (Info, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Info{}, err
	}
	detected, err := mimetype.DetectReader(r)
	if err != nil {
		return Info{}, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Info{}, err
	}

	info := Info{
		MimeType:  detected.String(),
		Extension: detected.Extension(),
	}
	switch {
	case strings.HasPrefix(info.MimeType, "image/"):
		info.Kind = KindImage
	case strings.HasPrefix(info.MimeType, "video/"):
		info.Kind = KindVideo
	default:
		return info, fmt.Errorf("%w: %s", ErrUnsupported, info.MimeType)
	}

	if info.Kind == KindVideo && (detected.Is("video/mp4") || detected.Is("video/quicktime") || detected.Is("video/x-m4v")) {
		if duration, err := ContainerDuration(r); err == nil {
			info.Duration = duration
		}
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return info, err
		}
	}
	return info, nil
}

type box struct {
	kind   string
	start  int64
	header int64
	size   int64
}

func (b box) body() int64 { return b.start + b.header }
func (b box) end() int64  { return b.start + b.size }

// ContainerDuration reads the movie header (moov/mvhd) of an ISO base media
// file.
func ContainerDuration(r io.ReadSeeker) (time.Duration, error) {
	limit, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}

	moov, err := findBox(r, 0, limit, "moov")
	if err != nil {
		return 0, err
	}
	mvhd, err := findBox(r, moov.body(), moov.end(), "mvhd")
	if err != nil {
		return 0, err
	}
	return readMovieHeader(r, mvhd)
}

func findBox(r io.ReadSeeker, from, limit int64, kind string) (box, error) {
	for pos := from; pos < limit; {
		b, err := readBox(r, pos, limit)
		if err != nil {
			return box{}, err
		}
		if b.kind == kind {
			return b, nil
		}
		pos = b.end()
	}
	return box{}, fmt.Errorf("%w: no %s box", ErrNoDuration, kind)
}

func readBox(r io.ReadSeeker, pos, limit int64) (box, error) {
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return box{}, err
	}
	var head [8]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return box{}, err
	}

	b := box{kind: string(head[4:]), start: pos, header: 8}
	switch size := binary.BigEndian.Uint32(head[:4]); size {
	case 0:
		b.size = limit - pos
	case 1:
		var large [8]byte
		if _, err := io.ReadFull(r, large[:]); err != nil {
			return box{}, err
		}
		b.header = 16
		b.size = int64(binary.BigEndian.Uint64(large[:]))
	default:
		b.size = int64(size)
	}

	if b.size < b.header || b.end() > limit {
		return box{}, fmt.Errorf("media: malformed %q box", b.kind)
	}
	return b, nil
}

// readMovieHeader decodes timescale and duration from an mvhd box. Version 0
// uses 32-bit times, version 1 64-bit.
func readMovieHeader(r io.ReadSeeker, b box) (time.Duration, error) {
	if _, err := r.Seek(b.body(), io.SeekStart); err != nil {
		return 0, err
	}

	var timescale uint32
	var units uint64
	payload := b.size - b.header

	var version [4]byte
	if payload < int64(len(version)) {
		return 0, fmt.Errorf("media: mvhd box too small")
	}
	if _, err := io.ReadFull(r, version[:]); err != nil {
		return 0, err
	}

	switch version[0] {
	case 0:
		var data [16]byte
		if payload-4 < int64(len(data)) {
			return 0, fmt.Errorf("media: mvhd box too small")
		}
		if _, err := io.ReadFull(r, data[:]); err != nil {
			return 0, err
		}
		timescale = binary.BigEndian.Uint32(data[8:12])
		units = uint64(binary.BigEndian.Uint32(data[12:16]))
	case 1:
		var data [28]byte
		if payload-4 < int64(len(data)) {
			return 0, fmt.Errorf("media: mvhd box too small")
		}
		if _, err := io.ReadFull(r, data[:]); err != nil {
			return 0, err
		}
		timescale = binary.BigEndian.Uint32(data[16:20])
		units = binary.BigEndian.Uint64(data[20:28])
	default:
		return 0, fmt.Errorf("media: unsupported mvhd version %d", version[0])
	}

	if timescale == 0 {
		return 0, fmt.Errorf("%w: zero timescale", ErrNoDuration)
	}
	return time.Duration(float64(units) / float64(timescale) * float64(time.Second)), nil
}
