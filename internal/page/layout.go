package page

import (
	"fmt"
	"math"
	"strings"

	"csethon/internal/canvas"
	"csethon/internal/content"
)

// Anchor is a navigable position on the page.
type Anchor int

const (
	AnchorHome Anchor = iota
	AnchorEvents
	AnchorJudges
	AnchorNotice
	AnchorFooter
	anchorCount
)

var anchorNames = [anchorCount]string{"home", "events", "judges", "notice", "footer"}

func (a Anchor) String() string {
	if a >= 0 && a < anchorCount {
		return anchorNames[a]
	}
	return fmt.Sprintf("anchor(%d)", int(a))
}

// ParseAnchor accepts the anchor names and their "#name" link form; "#"
// alone is home.
func ParseAnchor(s string) (Anchor, bool) {
	s = strings.TrimPrefix(strings.ToLower(s), "#")
	if s == "" {
		return AnchorHome, true
	}
	for i, n := range anchorNames {
		if n == s {
			return Anchor(i), true
		}
	}
	return 0, false
}

type itemKind int

const (
	kindRect itemKind = iota
	kindStrokeRect
	kindText
	kindGradientText
	kindHGradient
	kindVGradient
	kindCircle
	kindRadial
	kindCube
	kindChevron
	kindUnderline
)

// fx flags select the animations applied to an item.
type fx uint8

const (
	fxHeroIn fx = 1 << iota
	fxFloat
	fxGlitch
	fxBob
	fxReveal
	fxSlide
)

// item is one entry of the page display list, in document coordinates.
// Text items are positioned by their baseline.
type item struct {
	kind       itemKind
	x, y, w, h float64
	text       string
	size       float64
	col        canvas.Color
	stops      []canvas.Color
	width      float64
	fx         fx
	section    int
	delay      float64 // seconds after the section is revealed
}

type action struct {
	anchor   Anchor
	register int // event index, or -1
}

// hit is a clickable region. Fixed regions are in screen coordinates,
// the rest in document coordinates.
type hit struct {
	x, y, w, h float64
	act        action
	fixed      bool
}

func (h hit) contains(x, y float64) bool {
	return x >= h.x && x < h.x+h.w && y >= h.y && y < h.y+h.h
}

type layout struct {
	w, h     float64
	height   float64
	anchors  [anchorCount]float64
	sections []float64
	items    []item
	nav      []item
	hits     []hit
	year     int
}

var (
	titleStops  = []canvas.Color{canvas.Palette.Blue400, canvas.Palette.Cyan500, canvas.Palette.Indigo500}
	brandStops  = []canvas.Color{canvas.Palette.Blue400, canvas.Palette.Indigo500}
	judgeStops  = []canvas.Color{canvas.Palette.Blue400, canvas.Palette.Indigo400}
	ctaStops    = []canvas.Color{canvas.Palette.Blue600, canvas.Palette.Indigo600}
	accentStops = []canvas.Color{canvas.Palette.Cyan600, canvas.Palette.Blue500}
	ruleStops   = []canvas.Color{canvas.Palette.Blue500, canvas.Palette.Indigo500}
)

const (
	lineHeight   = 1.5
	gutter       = 16.0
	maxContainer = 1280.0
	navHeight    = 72.0

	// Section backgrounds let the ambient layers show through.
	backdropAlpha = 0.85
)

// baseline returns the text baseline for a line whose box starts at top.
func baseline(top, size float64) float64 { return top + size*11/13 }

type builder struct {
	*layout
	section int
	y       float64
}

func (b *builder) add(it item) {
	it.section = b.section
	b.items = append(b.items, it)
}

func (b *builder) beginSection(a Anchor) {
	b.section = len(b.sections)
	b.sections = append(b.sections, b.y)
	b.anchors[a] = b.y
}

func (b *builder) container() (x, w float64) {
	w = math.Min(b.w-2*gutter, maxContainer)
	return (b.w - w) / 2, w
}

func (b *builder) text(s string, x, top, size float64, c canvas.Color, f fx) {
	b.add(item{kind: kindText, x: x, y: baseline(top, size), h: size, text: s, size: size, col: c, fx: f})
}

func (b *builder) centered(s string, top, size float64, c canvas.Color, f fx) {
	b.text(s, b.w/2-canvas.TextWidth(s, size)/2, top, size, c, f)
}

// paragraph wraps s into maxW and returns the top of the next line.
func (b *builder) paragraph(s string, x, top, size, maxW float64, c canvas.Color, center bool, f fx) float64 {
	for _, line := range canvas.WrapText(s, size, maxW) {
		lx := x
		if center {
			lx = x + (maxW-canvas.TextWidth(line, size))/2
		}
		b.text(line, lx, top, size, c, f)
		top += size * lineHeight
	}
	return top
}

func paragraphHeight(s string, size, maxW float64) float64 {
	return float64(len(canvas.WrapText(s, size, maxW))) * size * lineHeight
}

func (b *builder) button(label string, x, top, w, h float64, stops []canvas.Color, act action, f fx, delay float64) {
	b.add(item{kind: kindHGradient, x: x, y: top, w: w, h: h, stops: stops, fx: f, delay: delay})
	size := 16.0
	b.add(item{kind: kindText, x: x + (w-canvas.TextWidth(label, size))/2, y: baseline(top+(h-size)/2, size), h: size,
		text: label, size: size, col: canvas.Palette.White, fx: f, delay: delay})
	b.hits = append(b.hits, hit{x: x, y: top, w: w, h: h, act: act})
}

func (b *builder) badge(label string, x, top float64, fill, border, text canvas.Color, f fx) float64 {
	size := 14.0
	w := canvas.TextWidth(label, size) + 24
	if fill.Visible() {
		b.add(item{kind: kindRect, x: x, y: top, w: w, h: 28, col: fill, fx: f})
	}
	if border.Visible() {
		b.add(item{kind: kindStrokeRect, x: x, y: top, w: w, h: 28, col: border, width: 1, fx: f})
	}
	b.text(label, x+12, top+7, size, text, f)
	return w
}

// build lays the whole page out for a w by h viewport.
func build(c *content.Content, w, h int, year int) *layout {
	l := &layout{w: float64(w), h: float64(h), year: year}
	b := &builder{layout: l}
	b.hero(c)
	b.events(c)
	b.judges(c)
	b.notice(c)
	b.footer(c)
	l.height = b.y
	b.navbar(c)
	return l
}

func (b *builder) hero(c *content.Content) {
	b.beginSection(AnchorHome)
	w, h := b.w, math.Max(b.h, 480)
	b.add(item{kind: kindRadial, x: w / 2, y: h / 2, w: w, h: h})
	b.add(item{kind: kindCube, x: w / 2, y: h / 2, size: 200})

	_, cw := b.container()
	titleSize := math.Min(72, math.Max(36, w/10))
	tagSize := 20.0
	if w >= 768 {
		tagSize = 24
	}
	tagW := math.Min(768, cw)
	blockH := 28 + 16 + titleSize*1.2 + 24 + paragraphHeight(c.Site.Tagline, tagSize, tagW) + 32 + 48
	y := h/2 - blockH/2

	bw := canvas.TextWidth(c.Site.Dates, 14) + 24
	b.badge(c.Site.Dates, w/2-bw/2, y, canvas.Palette.Blue700, canvas.Color{}, canvas.Palette.White, fxHeroIn)
	y += 44

	tw := canvas.TextWidth(c.Site.Title, titleSize)
	b.add(item{kind: kindGradientText, x: w/2 - tw/2, y: baseline(y, titleSize), w: tw, h: titleSize,
		text: c.Site.Title, size: titleSize, stops: titleStops, fx: fxHeroIn | fxFloat | fxGlitch})
	y += titleSize*1.2 + 24

	y = b.paragraph(c.Site.Tagline, w/2-tagW/2, y, tagSize, tagW, canvas.Palette.Gray300, true, fxHeroIn)
	y += 32

	cta := c.Site.CTA
	if cta == "" {
		cta = "Explore Events"
	}
	btnW := canvas.TextWidth(cta, 16) + 64
	b.button(cta, w/2-btnW/2, y, btnW, 48, ctaStops, action{anchor: AnchorEvents, register: -1}, fxHeroIn, 0)

	b.add(item{kind: kindChevron, x: w / 2, y: h - 56, w: 32, h: 32, col: canvas.Palette.Gray400, fx: fxBob})
	b.y = h
}

func gridColumns(w float64) int {
	switch {
	case w >= 1024:
		return 3
	case w >= 768:
		return 2
	}
	return 1
}

// eventCardHeight is the height of a card whose description wraps into
// innerW.
func eventCardHeight(e content.Event, innerW float64) float64 {
	return 8 + 24 + 44 + 8 + 24*1.2 + 8 + paragraphHeight(e.Description, 14, innerW) + 16 + 3*14*1.6 + 24 + 40 + 24
}

func (b *builder) sectionHeading(s content.Section, defaultHeading string) {
	if s.Badge != "" {
		bw := canvas.TextWidth(s.Badge, 14) + 24
		b.badge(s.Badge, b.w/2-bw/2, b.y, canvas.Palette.Blue700, canvas.Color{}, canvas.Palette.White, fxReveal)
		b.y += 44
	}
	heading := s.Heading
	if heading == "" {
		heading = defaultHeading
	}
	size := 36.0
	if b.w >= 768 {
		size = 48
	}
	b.centered(heading, b.y, size, canvas.Palette.White, fxReveal)
	b.y += size*1.2 + 16
	_, cw := b.container()
	bw := math.Min(768, cw)
	b.y = b.paragraph(s.Blurb, b.w/2-bw/2, b.y, 20, bw, canvas.Palette.Gray400, true, fxReveal)
	b.y += 64
}

func (b *builder) events(c *content.Content) {
	b.beginSection(AnchorEvents)
	top := b.y
	bg := len(b.items)
	b.add(item{kind: kindVGradient, x: 0, y: top, w: b.w,
		stops: []canvas.Color{canvas.Palette.Black, canvas.Palette.Gray900}, col: canvas.Color{A: backdropAlpha}})
	b.y += 80
	b.sectionHeading(c.EventsSection, "Thrilling Events")

	x0, cw := b.container()
	cols := gridColumns(b.w)
	const gap = 32.0
	cardW := (cw - float64(cols-1)*gap) / float64(cols)
	innerW := cardW - 48

	rowH := 0.0
	for i, e := range c.Events {
		col := i % cols
		if col == 0 && i > 0 {
			b.y += rowH + gap
			rowH = 0
		}
		ch := eventCardHeight(e, innerW)
		rowH = math.Max(rowH, ch)
		b.eventCard(i, e, x0+float64(col)*(cardW+gap), b.y, cardW, ch, c.Site)
	}
	b.y += rowH + 80
	b.items[bg].h = b.y - top
}

func (b *builder) eventCard(i int, e content.Event, x, y, w, h float64, site content.Site) {
	f := fxReveal | fxSlide
	d := float64(i) * 0.1
	card := func(it item) {
		it.fx |= f
		it.delay = d
		b.add(it)
	}
	card(item{kind: kindRect, x: x, y: y, w: w, h: h, col: canvas.Palette.Gray900.WithAlpha(0.8)})
	card(item{kind: kindStrokeRect, x: x, y: y, w: w, h: h, col: canvas.Palette.Gray800, width: 1})
	card(item{kind: kindHGradient, x: x, y: y, w: w, h: 8, stops: accentStops})

	px := x + 24
	ty := y + 8 + 24
	icon := e.Icon
	if icon == "" {
		icon = "*"
	}
	card(item{kind: kindText, x: px, y: baseline(ty, 36), h: 36, text: icon, size: 36, col: canvas.Palette.Blue400})
	if e.Badge != "" {
		bw := canvas.TextWidth(e.Badge, 14) + 24
		bx := x + w - 24 - bw
		card(item{kind: kindRect, x: bx, y: ty, w: bw, h: 28, col: canvas.Palette.Gray800})
		card(item{kind: kindStrokeRect, x: bx, y: ty, w: bw, h: 28, col: canvas.Palette.Gray700, width: 1})
		card(item{kind: kindText, x: bx + 12, y: baseline(ty+7, 14), h: 14, text: e.Badge, size: 14, col: canvas.Palette.Gray300})
	}
	ty += 44 + 8
	card(item{kind: kindText, x: px, y: baseline(ty, 24), h: 24, text: e.Title, size: 24, col: canvas.Palette.White})
	ty += 24*1.2 + 8
	for _, line := range canvas.WrapText(e.Description, 14, w-48) {
		card(item{kind: kindText, x: px, y: baseline(ty, 14), h: 14, text: line, size: 14, col: canvas.Palette.Gray400})
		ty += 14 * lineHeight
	}
	ty += 16
	ai := "No AI tools allowed"
	if e.AIAllowed {
		ai = "AI tools allowed"
	}
	for _, info := range []string{site.Dates, site.Location, ai} {
		card(item{kind: kindCircle, x: px + 7, y: ty + 7, w: 5, col: canvas.Palette.Gray400})
		card(item{kind: kindText, x: px + 24, y: baseline(ty, 14), h: 14, text: info, size: 14, col: canvas.Palette.Gray400})
		ty += 14 * 1.6
	}
	ty += 24
	b.button("Register for "+e.Title, px, ty, w-48, 40, accentStops, action{register: i}, f, d)
}

func (b *builder) judges(c *content.Content) {
	b.beginSection(AnchorJudges)
	top := b.y
	bg := len(b.items)
	b.add(item{kind: kindVGradient, x: 0, y: top, w: b.w,
		stops: []canvas.Color{canvas.Palette.Gray900, canvas.Palette.Black}, col: canvas.Color{A: backdropAlpha}})
	b.y += 80
	b.sectionHeading(c.JudgesSection, "Meet Our Judge")

	x0, cw := b.container()
	cw = math.Min(cw, 1024)
	x0 = b.w/2 - cw/2
	wide := b.w >= 1024
	for i, j := range c.Judges {
		b.judgeCard(i, j, x0, cw, wide)
		b.y += 32
	}
	b.y += 48
	b.items[bg].h = b.y - top
}

func initials(name string) string {
	var s []rune
	for _, f := range strings.Fields(name) {
		s = append(s, []rune(f)[0])
	}
	return string(s)
}

func (b *builder) judgeCard(i int, j content.Judge, x, w float64, wide bool) {
	f := fxReveal | fxSlide
	d := float64(i) * 0.1
	add := func(it item) {
		it.fx |= f
		it.delay = d
		b.add(it)
	}

	photoW, photoH := w, 320.0
	textX, textW := x+24, w-48
	if wide {
		photoW = w / 3
		textX, textW = x+photoW+32, w*2/3-64
	}
	descH := paragraphHeight(j.Description, 16, textW)
	textH := 32 + 28 + 12 + 36 + 16 + 4 + 16 + descH + 24 + 40 + 32
	h := textH
	if !wide {
		h += photoH
	} else {
		photoH = h
	}
	top := b.y

	add(item{kind: kindRect, x: x, y: top, w: w, h: h, col: canvas.Palette.Gray900.WithAlpha(0.8)})
	add(item{kind: kindStrokeRect, x: x, y: top, w: w, h: h, col: canvas.Palette.Gray800, width: 1})
	add(item{kind: kindHGradient, x: x, y: top, w: photoW, h: photoH, stops: ctaStops, col: canvas.Color{A: 0.2}})
	ini := initials(j.Name)
	add(item{kind: kindText, x: x + photoW/2 - canvas.TextWidth(ini, 96)/2, y: baseline(top+photoH/2-48, 96), h: 96,
		text: ini, size: 96, col: canvas.Palette.Blue300.WithAlpha(0.6)})

	ty := top + 32
	if !wide {
		ty += photoH
	}
	add(item{kind: kindCircle, x: textX + 10, y: ty + 14, w: 8, col: canvas.Palette.Blue400})
	bw := canvas.TextWidth(j.Title, 14) + 24
	add(item{kind: kindRect, x: textX + 28, y: ty, w: bw, h: 28, col: canvas.Palette.Blue900.WithAlpha(0.3)})
	add(item{kind: kindStrokeRect, x: textX + 28, y: ty, w: bw, h: 28, col: canvas.Palette.Blue700.WithAlpha(0.5), width: 1})
	add(item{kind: kindText, x: textX + 40, y: baseline(ty+7, 14), h: 14, text: j.Title, size: 14, col: canvas.Palette.Blue300})
	ty += 28 + 12
	nw := canvas.TextWidth(j.Name, 30)
	add(item{kind: kindGradientText, x: textX, y: baseline(ty, 30), w: nw, h: 30, text: j.Name, size: 30, stops: judgeStops})
	ty += 36 + 16
	add(item{kind: kindUnderline, x: textX, y: ty, w: 80, h: 4, stops: ruleStops, delay: d + 0.2})
	ty += 4 + 16
	for _, line := range canvas.WrapText(j.Description, 16, textW) {
		add(item{kind: kindText, x: textX, y: baseline(ty, 16), h: 16, text: line, size: 16, col: canvas.Palette.Gray300})
		ty += 16 * lineHeight
	}
	ty += 24
	lx := textX
	for _, link := range j.Links {
		label := linkGlyph(link.Kind)
		add(item{kind: kindText, x: lx, y: baseline(ty+12, 16), h: 16, text: label, size: 16, col: canvas.Palette.Gray400})
		lx += canvas.TextWidth(label, 16) + 16
	}
	const profile = "View Profile"
	pw := canvas.TextWidth(profile, 16) + 48
	px := textX + textW - pw
	add(item{kind: kindStrokeRect, x: px, y: ty, w: pw, h: 40, col: canvas.Palette.Blue700, width: 1})
	add(item{kind: kindText, x: px + 24, y: baseline(ty+12, 16), h: 16, text: profile, size: 16, col: canvas.Palette.Blue400})
	b.y = top + h
}

func linkGlyph(kind string) string {
	switch strings.ToLower(kind) {
	case "linkedin":
		return "in"
	case "github":
		return "gh"
	case "twitter":
		return "tw"
	case "instagram":
		return "ig"
	}
	return "->"
}

func (b *builder) notice(c *content.Content) {
	b.beginSection(AnchorNotice)
	top := b.y
	b.add(item{kind: kindRect, x: 0, y: top, w: b.w, col: canvas.Palette.Gray900.WithAlpha(backdropAlpha)})
	bg := len(b.items) - 1
	b.y += 64

	x0, cw := b.container()
	wide := b.w >= 768
	iconW := 0.0
	if wide {
		iconW = 72
	}
	bodyW := cw - 64 - iconW
	boxH := 32 + 24*1.2 + 8 + paragraphHeight(c.Notice.Body, 16, bodyW) + 32
	if !wide {
		boxH += 64
	}
	f := fxReveal
	b.add(item{kind: kindHGradient, x: x0, y: b.y, w: cw, h: boxH,
		stops: []canvas.Color{canvas.Palette.Blue900, canvas.Palette.Indigo900}, col: canvas.Color{A: 0.5}, fx: f})
	b.add(item{kind: kindStrokeRect, x: x0, y: b.y, w: cw, h: boxH, col: canvas.Palette.Blue800, width: 1, fx: f})

	tx, ty := x0+32+iconW, b.y+32
	iconX, iconY := x0+32+24, b.y+boxH/2
	if !wide {
		iconX, iconY = b.w/2, b.y+48
		ty += 64
	}
	b.add(item{kind: kindCircle, x: iconX, y: iconY, w: 24, col: canvas.Palette.Blue500.WithAlpha(0.25), fx: f})
	b.add(item{kind: kindText, x: iconX - canvas.TextWidth("!", 36)/2, y: baseline(iconY-18, 36), h: 36,
		text: "!", size: 36, col: canvas.Palette.Blue300, fx: f})
	heading := c.Notice.Heading
	if heading == "" {
		heading = "IMPORTANT NOTICE"
	}
	b.text(heading, tx, ty, 24, canvas.Palette.White, f)
	ty += 24*1.2 + 8
	b.paragraph(c.Notice.Body, tx, ty, 16, bodyW, canvas.Palette.Gray300, false, f)
	b.y += boxH + 64
	b.items[bg].h = b.y - top
}

func (b *builder) footer(c *content.Content) {
	b.beginSection(AnchorFooter)
	top := b.y
	b.add(item{kind: kindRect, x: 0, y: top, w: b.w, col: canvas.Palette.Gray950.WithAlpha(backdropAlpha)})
	bg := len(b.items) - 1
	b.add(item{kind: kindRect, x: 0, y: top, w: b.w, h: 1, col: canvas.Palette.Gray800})
	b.y += 48

	x0, cw := b.container()
	cols := 1
	if b.w >= 768 {
		cols = 3
	}
	const gap = 32.0
	colW := (cw - float64(cols-1)*gap) / float64(cols)
	colX := func(i int) float64 { return x0 + float64(i%cols)*(colW+gap) }

	// Brand column.
	y := b.y
	name := c.Site.ShortName
	if name == "" {
		name = c.Site.Title
	}
	b.add(item{kind: kindGradientText, x: colX(0), y: baseline(y, 20), w: canvas.TextWidth(name, 20), h: 20,
		text: name, size: 20, stops: brandStops, fx: fxFloat})
	y += 20*1.2 + 16
	y = b.paragraph(c.Footer.Blurb, colX(0), y, 16, colW, canvas.Palette.Gray400, false, 0)
	y += 16
	sx := colX(0)
	for _, kind := range []string{"twitter", "instagram", "github"} {
		g := linkGlyph(kind)
		b.text(g, sx, y, 16, canvas.Palette.Gray400, 0)
		sx += canvas.TextWidth(g, 16) + 16
	}
	y += 24
	colBottom := y

	// Quick links.
	y = b.y
	if cols == 1 {
		y = colBottom + gap
	}
	b.text("Quick Links", colX(1), y, 18, canvas.Palette.White, 0)
	y += 18*1.2 + 16
	for _, name := range c.Footer.Links {
		a, ok := ParseAnchor(name)
		if !ok {
			continue
		}
		b.text(name, colX(1), y, 16, canvas.Palette.Gray400, 0)
		b.hits = append(b.hits, hit{x: colX(1), y: y, w: canvas.TextWidth(name, 16), h: 16 * lineHeight, act: action{anchor: a, register: -1}})
		y += 16*lineHeight + 8
	}
	colBottom = math.Max(colBottom, y)

	// Event details.
	y = b.y
	if cols == 1 {
		y = colBottom + gap
	}
	b.text("Event Details", colX(2), y, 18, canvas.Palette.White, 0)
	y += 18*1.2 + 16
	for _, fact := range c.Footer.Facts {
		b.add(item{kind: kindCircle, x: colX(2) + 4, y: y + 8, w: 3, col: canvas.Palette.Blue500})
		b.text(fact, colX(2)+16, y, 16, canvas.Palette.Gray400, 0)
		y += 16*lineHeight + 8
	}
	colBottom = math.Max(colBottom, y)

	b.y = colBottom + 48
	b.add(item{kind: kindRect, x: x0, y: b.y, w: cw, h: 1, col: canvas.Palette.Gray800})
	b.y += 32
	copyright := fmt.Sprintf("(c) %d %s", b.year, c.Footer.Copyright)
	b.centered(copyright, b.y, 14, canvas.Palette.Gray500, 0)
	b.y += 14*lineHeight + 48
	b.items[bg].h = b.y - top
}

// navbar lays out the fixed header in screen coordinates.
func (b *builder) navbar(c *content.Content) {
	x0, cw := b.container()
	name := c.Site.ShortName
	if name == "" {
		name = c.Site.Title
	}
	size := 24.0
	top := (navHeight - size) / 2
	nw := canvas.TextWidth(name, size)
	b.nav = append(b.nav, item{kind: kindGradientText, x: x0, y: baseline(top, size), w: nw, h: size,
		text: name, size: size, stops: brandStops, fx: fxFloat})
	b.hits = append(b.hits, hit{x: x0, y: top, w: nw, h: size, act: action{anchor: AnchorHome, register: -1}, fixed: true})

	if b.w < 768 {
		return
	}
	links := []struct {
		label string
		a     Anchor
	}{{"Home", AnchorHome}, {"Events", AnchorEvents}}
	x := x0 + cw
	for i := len(links) - 1; i >= 0; i-- {
		lw := canvas.TextWidth(links[i].label, 16)
		x -= lw
		b.nav = append(b.nav, item{kind: kindText, x: x, y: baseline((navHeight-16)/2, 16), h: 16,
			text: links[i].label, size: 16, col: canvas.Palette.Gray300})
		b.hits = append(b.hits, hit{x: x, y: (navHeight - 16) / 2, w: lw, h: 16 * lineHeight,
			act: action{anchor: links[i].a, register: -1}, fixed: true})
		x -= 32
	}
}
