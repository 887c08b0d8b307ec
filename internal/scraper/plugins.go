package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/jmylchreest/recipe-api/internal/models"
)

// groupingStrategy probes one markup convention for grouped ingredients.
type groupingStrategy struct {
	name  string
	group func(p *Page, minItems int) models.Sections
}

// groupingStrategies run in order; the first acceptable result wins.
var groupingStrategies = []groupingStrategy{
	{name: "wprm", group: wprmGroups},
	{name: "tasty", group: tastyGroups},
	{name: "generic", group: genericGroups},
}

// GroupIngredients looks for ingredient groups in recipe-plugin markup. It
// returns the strategy name and the groups, or "" and nil when no strategy
// produced more than one section or a single named one. Groupings holding
// fewer than minItems ingredients cover only part of the list and are
// skipped so no ingredient is lost.
func GroupIngredients(p *Page, minItems int) (string, models.Sections) {
	for _, s := range groupingStrategies {
		if groups := s.group(p, minItems); acceptGroups(groups, minItems) {
			return s.name, groups
		}
	}
	return "", nil
}

func acceptGroups(s models.Sections, minItems int) bool {
	if s.Count() < minItems {
		return false
	}
	return len(s) > 1 || (len(s) == 1 && s[0].Name != nil)
}

// wprmGroups reads WP Recipe Maker's dedicated group containers.
func wprmGroups(p *Page, _ int) models.Sections {
	var out models.Sections
	p.Doc.Find(".wprm-recipe-ingredient-group").Each(func(_ int, g *goquery.Selection) {
		var items []string
		g.Find("li.wprm-recipe-ingredient").Each(func(_ int, li *goquery.Selection) {
			if line := cleanLine(li.Text()); line != "" {
				items = append(items, line)
			}
		})
		if len(items) == 0 {
			return
		}
		out = append(out, models.NewSection(headingName(g.Find(".wprm-recipe-group-name").First().Text()), items...))
	})
	return out
}

const (
	tastyContainerXPath = `//div[contains(concat(' ', normalize-space(@class), ' '), ' tasty-recipes-ingredients ')]`
	tastyHeadingXPath   = `.//*[self::h3 or self::h4 or self::h5]`
	nextListXPath       = `following-sibling::*[1][self::ul or self::ol]`
	leadingListXPath    = `.//*[self::ul or self::ol][not(preceding-sibling::*[self::h3 or self::h4 or self::h5])][not(ancestor::li)]`
)

// tastyGroups reads Tasty Recipes markup, where each group is a heading
// immediately followed by a list.
func tastyGroups(p *Page, _ int) models.Sections {
	root := p.root()
	if root == nil {
		return nil
	}
	container := htmlquery.FindOne(root, tastyContainerXPath)
	if container == nil {
		return nil
	}

	var out models.Sections
	for _, list := range htmlquery.Find(container, leadingListXPath) {
		if items := listItems(list); len(items) > 0 {
			out = append(out, models.NewSection("", items...))
		}
	}
	for _, heading := range htmlquery.Find(container, tastyHeadingXPath) {
		list := htmlquery.FindOne(heading, nextListXPath)
		if list == nil {
			continue
		}
		if items := listItems(list); len(items) > 0 {
			out = append(out, models.NewSection(headingName(htmlquery.InnerText(heading)), items...))
		}
	}
	return out
}

func listItems(list *html.Node) []string {
	var items []string
	for _, li := range htmlquery.Find(list, "./li") {
		if line := cleanLine(htmlquery.InnerText(li)); line != "" {
			items = append(items, line)
		}
	}
	return items
}

// genericGroups scans ingredient-ish containers for lists. A list directly
// after a heading is named by it; other top-level lists are unnamed, and
// consecutive unnamed lists merge. The first container yielding an
// acceptable grouping is used.
func genericGroups(p *Page, minItems int) models.Sections {
	var out models.Sections
	p.Doc.Find(`[class*="ingredient"]`).EachWithBreak(func(_ int, c *goquery.Selection) bool {
		var groups models.Sections
		c.Find("ul, ol").Each(func(_ int, list *goquery.Selection) {
			if list.ParentsUntilSelection(c).Filter("li").Length() > 0 {
				return
			}
			var items []string
			list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
				if line := cleanLine(li.Text()); line != "" {
					items = append(items, line)
				}
			})
			if len(items) == 0 {
				return
			}

			if h := list.Prev(); h.Is("h2, h3, h4, h5, h6") {
				groups = append(groups, models.NewSection(headingName(h.Text()), items...))
				return
			}
			if n := len(groups); n > 0 && groups[n-1].Name == nil {
				groups[n-1].Items = append(groups[n-1].Items, items...)
				return
			}
			groups = append(groups, models.NewSection("", items...))
		})
		if acceptGroups(groups, minItems) {
			out = groups
			return false
		}
		return true
	})
	return out
}

func headingName(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(cleanLine(s), ":"))
}
