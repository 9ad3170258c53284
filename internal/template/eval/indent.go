package eval

import (
	"strings"

	wlex "github.com/inspectgen/inspectgen/internal/template/lexer"
)

// tabMachine rewrites the leading whitespace of every emitted text line so
// the generated output's indentation reflects the template's logical
// structure (§4.3.6) instead of its literal source indentation.
//
// Grounded line-for-line on AdjustTab/AddTabs/EatTab/EatSpaces/
// CommitTextForAdjustment in original_source/src/codegen_parse_write.cpp,
// except for the condition at the end of adjust that stops adjustment (see
// DESIGN.md).
type tabMachine struct {
	tabSize   int
	useSpaces bool

	tabsToAdd    int
	tabsToRemove int
	tabsAdded    int
	tabsRemoved  int
	queuedTabs   int

	shouldAdjust bool

	// scopeLevels is the bit-stack of §4.3.7: one bit per nested block,
	// set when that level suppresses TextNewLine output. top tracks the
	// index of the innermost level (0 = no blocks pushed).
	scopeLevels uint64
	top         int
}

func newTabMachine(tabSize int, useSpaces bool) *tabMachine {
	return &tabMachine{tabSize: tabSize, useSpaces: useSpaces, shouldAdjust: true}
}

// pushScopeLevel mirrors PushScopeLevel: every block form pushes once.
func (m *tabMachine) pushScopeLevel(ignoreNewLines, increaseTabLevel bool) {
	m.top++
	if ignoreNewLines {
		m.scopeLevels |= 1 << uint(m.top)
	}
	if increaseTabLevel {
		m.tabsToRemove++
	}
}

// popScopeLevel mirrors PopScopeLevel.
func (m *tabMachine) popScopeLevel(popTabLevel bool) {
	m.scopeLevels &^= 1 << uint(m.top)
	m.top--
	if popTabLevel {
		m.tabsToRemove--
	}
}

func (m *tabMachine) shouldIgnoreNewLine() bool {
	return m.scopeLevels&(1<<uint(m.top)) != 0
}

// savedState is the subset of state a procedure call suspends and restores
// around evaluating its body (parser_state in the original, minus the
// commented-out tab-state fields which the original never actually uses).
type savedState struct {
	scopeLevels uint64
	top         int
}

func (m *tabMachine) save() savedState {
	s := savedState{scopeLevels: m.scopeLevels, top: m.top}
	m.scopeLevels = 0
	m.top = 0
	return s
}

func (m *tabMachine) restore(s savedState) {
	m.scopeLevels = s.scopeLevels
	m.top = s.top
}

func (m *tabMachine) setLineBeginTabState() {
	m.tabsRemoved = 0
	m.tabsAdded = 0
	m.shouldAdjust = true
	m.queuedTabs = 0
}

func (m *tabMachine) setIgnoreLineBeginTabState() {
	m.tabsRemoved = 0
	m.shouldAdjust = true
	m.queuedTabs = 0
}

func (m *tabMachine) stopAdjusting() { m.shouldAdjust = false }

// countLeadingTabs counts a pure-whitespace text token as tab-equivalents
// (Tabs in the original): a literal tab counts as one, tabSize spaces count
// as one. Any non-whitespace byte makes this not a leading-whitespace run,
// so the caller emits it verbatim instead of queuing it.
func (m *tabMachine) countLeadingTabs(text string) int {
	tabs, spaces := 0, 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\t':
			tabs++
		case ' ':
			spaces++
		default:
			return 0
		}
	}
	return tabs + spaces/m.tabSize
}

func (m *tabMachine) addTabs(out *strings.Builder, n int) {
	ch := byte('\t')
	if m.useSpaces {
		ch = ' '
	}
	for i := 0; i < n*m.tabSize; i++ {
		out.WriteByte(ch)
	}
	m.tabsAdded += n
}

func eatTab(text string) string { return text[1:] }

func (m *tabMachine) eatSpaces(text string) (string, bool) {
	if len(text) < m.tabSize {
		return text, false
	}
	for i := 0; i < m.tabSize; i++ {
		if text[i] != ' ' {
			return text, false
		}
	}
	return text[m.tabSize:], true
}

// adjust applies the indentation machine to one piece of committed text
// (AdjustTab), returning the text actually to be written.
func (m *tabMachine) adjust(text string) string {
	if !m.shouldAdjust {
		return text
	}

	var prefix strings.Builder

	if m.queuedTabs != 0 {
		deficit := m.tabsToRemove - m.tabsRemoved
		switch {
		case m.queuedTabs == deficit:
			m.queuedTabs = 0
			m.tabsRemoved = m.tabsToRemove
		case m.queuedTabs < deficit:
			m.tabsRemoved += m.queuedTabs
			m.queuedTabs = 0
		default: // queuedTabs > deficit
			m.queuedTabs -= deficit
			m.tabsRemoved = m.tabsToRemove
			m.addTabs(&prefix, m.queuedTabs)
			m.queuedTabs = 0
		}
	}

	if m.tabsAdded != m.tabsToAdd {
		m.addTabs(&prefix, m.tabsToAdd-m.tabsAdded)
	}

	if m.tabsRemoved != m.tabsToRemove {
		for m.tabsRemoved < m.tabsToRemove {
			if len(text) == 0 {
				break
			}
			if text[0] == '\t' {
				text = eatTab(text)
				m.tabsRemoved++
				continue
			}
			if text[0] == ' ' {
				next, ok := m.eatSpaces(text)
				if !ok {
					break
				}
				text = next
				m.tabsRemoved++
				continue
			}
			break
		}
	}

	if len(text) == 0 || (text[0] != '\t' && text[0] != ' ') {
		m.stopAdjusting()
	}

	return prefix.String() + text
}

// renderTabs expands literal tab characters to spaces when useSpaces is
// set, matching CommitTextForAdjustment's output-side expansion.
func (m *tabMachine) renderTabs(text string) string {
	if !m.useSpaces || !strings.ContainsRune(text, '\t') {
		return text
	}
	var out strings.Builder
	for i := 0; i < len(text); i++ {
		if text[i] == '\t' {
			out.WriteString(strings.Repeat(" ", m.tabSize))
		} else {
			out.WriteByte(text[i])
		}
	}
	return out.String()
}

// tabsOf is the Tabs() helper: a Text token is only "leading whitespace" if
// every byte in it is a tab or a space.
func tabsOf(m *tabMachine, tok wlex.Token) int {
	return m.countLeadingTabs(tok.Text)
}
