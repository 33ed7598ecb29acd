package main

import (
	"github.com/arinc665/arinc665/decompiler"
	"github.com/arinc665/arinc665/media"
)

// mediaSetSummary is a JSON-friendly projection of a decompiled MediaSet;
// media.MediaSet itself holds unexported tree state and is not meant to be
// marshalled directly.
type mediaSetSummary struct {
	PartNumber string        `json:"partNumber"`
	Files      []fileSummary `json:"files"`
	Loads      []loadSummary `json:"loads"`
	Batches    []batchSummary `json:"batches"`
}

type fileSummary struct {
	Path   string `json:"path"`
	Medium uint8  `json:"medium"`
	Bytes  int    `json:"bytes"`
}

type loadSummary struct {
	Path         string   `json:"path"`
	Medium       uint8    `json:"medium"`
	PartNumber   string   `json:"partNumber"`
	DataFiles    []string `json:"dataFiles"`
	SupportFiles []string `json:"supportFiles"`
}

type batchSummary struct {
	Path       string   `json:"path"`
	Medium     uint8    `json:"medium"`
	PartNumber string   `json:"partNumber"`
	Comment    string   `json:"comment"`
	Loads      []string `json:"loads"`
}

func summarize(result *decompiler.Result) mediaSetSummary {
	ms := result.MediaSet
	out := mediaSetSummary{PartNumber: ms.PartNumber}

	for _, rf := range ms.RecursiveRegularFiles() {
		out.Files = append(out.Files, fileSummary{
			Path:   media.Path(rf),
			Medium: uint8(media.EffectiveMedium(rf)),
			Bytes:  len(rf.Payload),
		})
	}

	for _, l := range ms.RecursiveLoads() {
		ls := loadSummary{
			Path:       media.Path(l),
			Medium:     uint8(media.EffectiveMedium(l)),
			PartNumber: l.PartNumber,
		}
		for _, ref := range l.DataFiles {
			ls.DataFiles = append(ls.DataFiles, ref.File.Name())
		}
		for _, ref := range l.SupportFiles {
			ls.SupportFiles = append(ls.SupportFiles, ref.File.Name())
		}
		out.Loads = append(out.Loads, ls)
	}

	for _, b := range ms.RecursiveBatches() {
		bs := batchSummary{
			Path:       media.Path(b),
			Medium:     uint8(media.EffectiveMedium(b)),
			PartNumber: b.PartNumber,
			Comment:    b.Comment,
		}
		for _, target := range b.TargetHardware {
			for _, l := range target.Loads {
				bs.Loads = append(bs.Loads, l.Name())
			}
		}
		out.Batches = append(out.Batches, bs)
	}

	return out
}
