package pptx

import (
	"strconv"

	"github.com/antchfx/xmlquery"
)

// Effect is an entrance effect played on click.
type Effect struct {
	PresetID int
	// Filter is the p:animEffect filter, for example dissolve.
	Filter string
	// Duration in milliseconds.
	Duration int
}

// Build selects what a shape reveals per click.
type Build struct {
	ShapeID int
	// Paragraphs is the number of paragraphs revealed one click each.
	// 0 or 1 reveals the whole shape with a single click.
	Paragraphs int
}

func (b Build) byParagraph() bool {
	return b.Paragraphs > 1
}

// AddClickEffects appends one click-triggered entry per shape, or per
// paragraph for paragraph builds, to the main sequence of the slide timing.
// Existing timing nodes are kept and new time node ids continue after the
// largest id in use. It returns the number of entries added.
func (s *Slide) AddClickEffects(e Effect, builds ...Build) int {
	if len(builds) == 0 {
		return 0
	}
	timing := ensureChild(s.root(), "p:timing", sldOrder)
	nextID := maxTimeNodeID(timing) + 1
	newID := func() string {
		id := strconv.Itoa(nextID)
		nextID++
		return id
	}
	seq := s.mainSequence(timing, newID)
	childTnLst := ensureChild(seq, "p:childTnLst", cTnOrder)

	bldLst := ensureChild(timing, "p:bldLst", timingOrder)
	added := 0
	for _, b := range builds {
		if b.byParagraph() {
			for i := 0; i < b.Paragraphs; i++ {
				xmlquery.AddChild(childTnLst, clickEffect(e, newID, targetElement(b.ShapeID, i)))
				added++
			}
		} else {
			xmlquery.AddChild(childTnLst, clickEffect(e, newID, targetElement(b.ShapeID, -1)))
			added++
		}
		addBuildParagraph(bldLst, b)
	}
	return added
}

// ClickEffects returns the number of click-triggered entries in the slide timing.
func (s *Slide) ClickEffects() int {
	timing := child(s.root(), "p:timing")
	if timing == nil {
		return 0
	}
	return len(xmlquery.Find(timing, ".//*[local-name()='cTn'][@nodeType='clickEffect']"))
}

// mainSequence returns the cTn of the main sequence, creating the root
// time node and the sequence when the slide has none.
func (s *Slide) mainSequence(timing *xmlquery.Node, newID func() string) *xmlquery.Node {
	if seq := xmlquery.FindOne(timing, ".//*[local-name()='cTn'][@nodeType='mainSeq']"); seq != nil {
		return seq
	}
	root := xmlquery.FindOne(timing, ".//*[local-name()='cTn'][@nodeType='tmRoot']")
	if root == nil {
		tnLst := ensureChild(timing, "p:tnLst", timingOrder)
		root = newElement("p:cTn", "id", newID(), "dur", "indefinite", "restart", "never", "nodeType", "tmRoot")
		xmlquery.AddChild(tnLst, el("p:par", nil, root))
	}
	seq := newElement("p:cTn", "id", newID(), "dur", "indefinite", "nodeType", "mainSeq")
	xmlquery.AddChild(ensureChild(root, "p:childTnLst", cTnOrder), el("p:seq", []string{"concurrent", "1", "nextAc", "seek"},
		seq,
		el("p:prevCondLst", nil, slideCondition("onPrev")),
		el("p:nextCondLst", nil, slideCondition("onNext")),
	))
	return seq
}

func slideCondition(evt string) *xmlquery.Node {
	return el("p:cond", []string{"evt", evt, "delay", "0"},
		el("p:tgtEl", nil, newElement("p:sldTgt")),
	)
}

func maxTimeNodeID(timing *xmlquery.Node) int {
	max := 0
	for _, n := range xmlquery.Find(timing, ".//*[local-name()='cTn']") {
		if v := intAttr(n, "id", 0); v > max {
			max = v
		}
	}
	return max
}

func delayCondition(delay string) *xmlquery.Node {
	return el("p:stCondLst", nil, newElement("p:cond", "delay", delay))
}

// clickEffect builds the three nested time nodes of one click: the click
// group, its parallel group and the effect holding a visibility set and the
// filter animation.
func clickEffect(e Effect, newID func() string, target func() *xmlquery.Node) *xmlquery.Node {
	clickID, groupID, effectID, setID, animID := newID(), newID(), newID(), newID(), newID()
	set := el("p:set", nil,
		el("p:cBhvr", nil,
			el("p:cTn", []string{"id", setID, "dur", "1", "fill", "hold"}, delayCondition("0")),
			el("p:tgtEl", nil, target()),
			el("p:attrNameLst", nil, el("p:attrName", nil, newText("style.visibility"))),
		),
		el("p:to", nil, newElement("p:strVal", "val", "visible")),
	)
	anim := el("p:animEffect", []string{"transition", "in", "filter", e.Filter},
		el("p:cBhvr", nil,
			newElement("p:cTn", "id", animID, "dur", strconv.Itoa(e.Duration)),
			el("p:tgtEl", nil, target()),
		),
	)
	effect := el("p:cTn", []string{
		"id", effectID,
		"presetID", strconv.Itoa(e.PresetID),
		"presetClass", "entr",
		"presetSubtype", "0",
		"fill", "hold",
		"grpId", "0",
		"nodeType", "clickEffect",
	},
		delayCondition("0"),
		el("p:childTnLst", nil, set, anim),
	)
	group := el("p:cTn", []string{"id", groupID, "fill", "hold"},
		delayCondition("0"),
		el("p:childTnLst", nil, el("p:par", nil, effect)),
	)
	return el("p:par", nil,
		el("p:cTn", []string{"id", clickID, "fill", "hold"},
			delayCondition("indefinite"),
			el("p:childTnLst", nil, el("p:par", nil, group)),
		),
	)
}

// targetElement returns a builder of p:spTgt for the shape, narrowed to one
// paragraph when paragraph is not negative.
func targetElement(shapeID, paragraph int) func() *xmlquery.Node {
	return func() *xmlquery.Node {
		tgt := newElement("p:spTgt", "spid", strconv.Itoa(shapeID))
		if paragraph >= 0 {
			i := strconv.Itoa(paragraph)
			xmlquery.AddChild(tgt, el("p:txEl", nil, newElement("p:pRg", "st", i, "end", i)))
		}
		return tgt
	}
}

func addBuildParagraph(bldLst *xmlquery.Node, b Build) {
	spid := strconv.Itoa(b.ShapeID)
	for _, n := range children(bldLst, "p:bldP") {
		if attr(n, "spid") == spid && attr(n, "grpId") == "0" {
			return
		}
	}
	bldP := newElement("p:bldP", "spid", spid, "grpId", "0")
	if b.byParagraph() {
		setAttr(bldP, "build", "p")
	}
	xmlquery.AddChild(bldLst, bldP)
}
