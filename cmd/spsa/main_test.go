package main

import (
	"image"
	"testing"
	"time"
)

func TestSheetAtlas(t *testing.T) {
	cases := []struct {
		name       string
		bounds     image.Rectangle
		w, h       int
		cols, rows int
		wantErr    bool
	}{
		{"exact", image.Rect(0, 0, 384, 128), 128, 128, 3, 1, false},
		{"remainder_ignored", image.Rect(0, 0, 100, 70), 32, 32, 3, 2, false},
		{"too_small", image.Rect(0, 0, 16, 16), 32, 32, 0, 0, true},
		{"zero_frame", image.Rect(0, 0, 16, 16), 0, 8, 0, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			atlas, err := sheetAtlas(c.bounds, c.w, c.h)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if atlas.Columns != c.cols || atlas.Rows != c.rows {
				t.Fatalf("expected %dx%d grid, got %dx%d", c.cols, c.rows, atlas.Columns, atlas.Rows)
			}
		})
	}
}

func TestSheetFrames(t *testing.T) {
	atlas, err := sheetAtlas(image.Rect(0, 0, 96, 64), 32, 32)
	if err != nil {
		t.Fatal(err)
	}

	frames, err := sheetFrames(atlas, 4, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 4 || frames[3].Index != 3 || frames[0].Duration != 100*time.Millisecond {
		t.Fatalf("unexpected frames %+v", frames)
	}

	all, _ := sheetFrames(atlas, 0, 10)
	if len(all) != 6 {
		t.Fatalf("expected every tile, got %d", len(all))
	}
	over, _ := sheetFrames(atlas, 40, 10)
	if len(over) != 6 {
		t.Fatalf("count beyond the sheet should clamp, got %d", len(over))
	}
	if _, err := sheetFrames(atlas, 2, 0); err == nil {
		t.Fatalf("expected fps error")
	}
}
