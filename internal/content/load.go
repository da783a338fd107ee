package content

import (
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

//go:embed schema/catalog.schema.json
var catalogSchema string

// eventFiles are merged into one catalog in this exact order. Thematic
// sets added later must append here, never reorder.
var eventFiles = []string{
	"data/events_prince.yaml",
	"data/events_king.yaml",
	"data/events_war.yaml",
	"data/events_economy.yaml",
}

// Load parses and validates the embedded catalogs.
func Load() (*Catalogs, error) {
	schemas, err := compileSchemas()
	if err != nil {
		return nil, fmt.Errorf("compile schemas: %w", err)
	}

	c := &Catalogs{}

	var nations struct {
		Nations []Nation `yaml:"nations"`
	}
	if err := readYAML("data/nations.yaml", &nations, nil); err != nil {
		return nil, err
	}
	c.Nations = nations.Nations

	var traits struct {
		Traits []Trait `yaml:"traits"`
	}
	if err := readYAML("data/traits.yaml", &traits, nil); err != nil {
		return nil, err
	}
	c.Traits = traits.Traits

	var factions struct {
		Factions []FactionDef `yaml:"factions"`
	}
	if err := readYAML("data/factions.yaml", &factions, nil); err != nil {
		return nil, err
	}
	c.Factions = factions.Factions

	var regions struct {
		Regions []RegionDef `yaml:"regions"`
	}
	if err := readYAML("data/regions.yaml", &regions, nil); err != nil {
		return nil, err
	}
	c.Regions = regions.Regions

	var rulesDoc struct {
		Turn    TurnRules     `yaml:"turn"`
		War     WarConfig     `yaml:"war"`
		Economy EconomyConfig `yaml:"economy"`
	}
	if err := readYAML("data/rules.yaml", &rulesDoc, nil); err != nil {
		return nil, err
	}
	c.Rules = rulesDoc.Turn
	c.War = rulesDoc.War
	c.Economy = rulesDoc.Economy

	var actions struct {
		Actions []Action `yaml:"actions"`
	}
	if err := readYAML("data/actions.yaml", &actions, schemas.actions); err != nil {
		return nil, err
	}
	c.Actions = actions.Actions

	var warActions struct {
		Actions []Action `yaml:"actions"`
	}
	if err := readYAML("data/war_actions.yaml", &warActions, schemas.actions); err != nil {
		return nil, err
	}
	c.WarActions = warActions.Actions

	var econActions struct {
		Actions []Action `yaml:"actions"`
	}
	if err := readYAML("data/economy_actions.yaml", &econActions, schemas.actions); err != nil {
		return nil, err
	}
	c.EconomyActions = econActions.Actions

	for _, name := range eventFiles {
		var events struct {
			Events []Event `yaml:"events"`
		}
		if err := readYAML(name, &events, schemas.events); err != nil {
			return nil, err
		}
		c.Events = append(c.Events, events.Events...)
	}

	if err := readYAML("data/arc.yaml", &c.Arc, nil); err != nil {
		return nil, err
	}

	if err := readYAML("data/endings.yaml", &c.Endings, schemas.endings); err != nil {
		return nil, err
	}
	for i := range c.Endings.Victory {
		c.Endings.Victory[i].Kind = EndingVictory
	}
	for i := range c.Endings.GameOver {
		c.Endings.GameOver[i].Kind = EndingGameOver
	}

	c.warnDanglingRefs()
	return c, nil
}

// MustLoad is Load for program start, where a broken embedded catalog is
// unrecoverable.
func MustLoad() *Catalogs {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

type schemaSet struct {
	actions *jsonschema.Schema
	events  *jsonschema.Schema
	endings *jsonschema.Schema
}

func compileSchemas() (*schemaSet, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("catalog.schema.json", strings.NewReader(catalogSchema)); err != nil {
		return nil, err
	}

	s := &schemaSet{}
	var err error
	if s.actions, err = compiler.Compile("catalog.schema.json#/$defs/actionsDoc"); err != nil {
		return nil, err
	}
	if s.events, err = compiler.Compile("catalog.schema.json#/$defs/eventsDoc"); err != nil {
		return nil, err
	}
	if s.endings, err = compiler.Compile("catalog.schema.json#/$defs/endingsDoc"); err != nil {
		return nil, err
	}
	return s, nil
}

// readYAML decodes one embedded catalog file into out. When a schema is
// given the raw document is validated first, so catalog typos fail at
// load time instead of silently never matching in play.
func readYAML(name string, out any, schema *jsonschema.Schema) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	if schema != nil {
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		if err := schema.Validate(doc); err != nil {
			return fmt.Errorf("validate %s: %w", name, err)
		}
	}

	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// warnDanglingRefs logs catalog entries that reference unknown ids. These
// degrade to no-ops at runtime, so they are warnings, not errors.
func (c *Catalogs) warnDanglingRefs() {
	checkTriggers := func(kind string, actions []Action) {
		for _, a := range actions {
			for _, id := range a.MayTrigger {
				if c.Event(id) == nil {
					slog.Warn("catalog references unknown event", "catalog", kind, "action", a.ID, "event", id)
				}
			}
		}
	}
	checkTriggers("actions", c.Actions)
	checkTriggers("war_actions", c.WarActions)
	checkTriggers("economy_actions", c.EconomyActions)

	for _, m := range c.Arc.Milestones {
		for _, id := range m.OnStartQueueEvents {
			if c.Event(id) == nil {
				slog.Warn("milestone references unknown event", "milestone", m.ID, "event", id)
			}
		}
	}
}
