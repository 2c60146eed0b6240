package pptx

import (
	"encoding/xml"
	"fmt"
)

const (
	slideContentType      = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	notesSlideContentType = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
)

type contentTypes struct {
	XMLName   xml.Name               `xml:"http://schemas.openxmlformats.org/package/2006/content-types Types"`
	Defaults  []*contentTypeDefault  `xml:"Default"`
	Overrides []*contentTypeOverride `xml:"Override"`
}

type contentTypeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentTypeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

func parseContentTypes(b []byte) (*contentTypes, error) {
	ct := &contentTypes{}
	if err := xml.Unmarshal(b, ct); err != nil {
		return nil, fmt.Errorf("%w: invalid %s: %w", ErrFormat, contentTypesPart, err)
	}
	return ct, nil
}

func (ct *contentTypes) marshal() ([]byte, error) {
	b, err := xml.Marshal(ct)
	if err != nil {
		return nil, err
	}
	return append([]byte(xmlHeader), b...), nil
}

// override returns the content type declared for the part, if any.
func (ct *contentTypes) override(partName string) string {
	for _, o := range ct.Overrides {
		if o.PartName == "/"+partName {
			return o.ContentType
		}
	}
	return ""
}

func (ct *contentTypes) setOverride(partName, contentType string) {
	for _, o := range ct.Overrides {
		if o.PartName == "/"+partName {
			o.ContentType = contentType
			return
		}
	}
	ct.Overrides = append(ct.Overrides, &contentTypeOverride{PartName: "/" + partName, ContentType: contentType})
}

func (ct *contentTypes) removeOverride(partName string) {
	for i, o := range ct.Overrides {
		if o.PartName == "/"+partName {
			ct.Overrides = append(ct.Overrides[:i], ct.Overrides[i+1:]...)
			return
		}
	}
}
