package extractor

import (
	"github.com/wudi/pdffeatures/features"
	"github.com/wudi/pdffeatures/ir/semantic"
)

// Link names a relation from an image to other objects.
type Link string

const (
	LinkColorSpace Link = "colorSpace"
	LinkMask       Link = "mask"
	LinkSMask      Link = "sMask"
	LinkAlternates Link = "alternates"
)

// ImageXObject reports an image XObject and the ids of its related objects.
type ImageXObject struct {
	Image        *semantic.ImageXObject
	ID           string
	ColorSpaceID string
	MaskID       string
	SMaskID      string
	AlternateIDs []string
}

func (e *ImageXObject) Category() features.Category { return features.CategoryImageXObject }

// Links returns the ids linked through link.
func (e *ImageXObject) Links(link Link) []string {
	switch link {
	case LinkColorSpace:
		return nonEmpty(e.ColorSpaceID)
	case LinkMask:
		return nonEmpty(e.MaskID)
	case LinkSMask:
		return nonEmpty(e.SMaskID)
	case LinkAlternates:
		return append([]string(nil), e.AlternateIDs...)
	}
	return nil
}

func (e *ImageXObject) Extract(c *features.Collection) *features.Node {
	root := e.report(e.Links)
	if root == nil {
		return nil
	}
	c.Add(features.CategoryImageXObject, root)
	return root
}

func (e *ImageXObject) report(links func(Link) []string) *features.Node {
	img := e.Image
	if img == nil {
		return nil
	}
	root := features.NewRoot("xobject")
	root.SetAttribute("type", "image")
	if e.ID != "" {
		root.SetAttribute(features.IDAttr, e.ID)
	}
	addInt(root, "width", img.Width)
	addInt(root, "height", img.Height)
	if img.BitsPerComponent != nil {
		addInt(root, "bitsPerComponent", *img.BitsPerComponent)
	}
	addBool(root, "imageMask", img.ImageMask)
	addBool(root, "interpolate", img.Interpolate)
	features.AddNotEmpty(root, "intent", img.Intent)
	features.LinkIDSet(root, links(LinkColorSpace), "colorSpace", "")
	features.LinkIDSet(root, links(LinkMask), "mask", "")
	features.LinkIDSet(root, links(LinkSMask), "sMask", "")
	features.LinkIDSet(root, links(LinkAlternates), "alternate", "alternates")
	if len(img.Filters) > 0 {
		fl := root.AddChild("filters")
		for _, f := range img.Filters {
			features.AddNotEmpty(fl, "filter", f)
		}
	}
	return root
}

// SoftMaskImage is an image used as another image's /SMask. It reports
// like ImageXObject but never links a color space.
type SoftMaskImage struct {
	ImageXObject
}

func (e *SoftMaskImage) Category() features.Category { return features.CategorySoftMaskImage }

func (e *SoftMaskImage) Links(link Link) []string {
	if link == LinkColorSpace {
		return nil
	}
	return e.ImageXObject.Links(link)
}

func (e *SoftMaskImage) Extract(c *features.Collection) *features.Node {
	root := e.report(e.Links)
	if root == nil {
		return nil
	}
	c.Add(features.CategorySoftMaskImage, root)
	return root
}

func nonEmpty(id string) []string {
	if id == "" {
		return nil
	}
	return []string{id}
}
