package mockdata

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ignatzorin/kerjaku-backend/internal/models"
)

//go:embed seed.yaml
var seedYAML []byte

// Dataset встроенные демо-данные, которыми заполняются пустые коллекции.
type Dataset struct {
	Workers      []models.Worker      `yaml:"workers"`
	Employers    []models.Employer    `yaml:"employers"`
	Jobs         []models.JobPosting  `yaml:"jobs"`
	Reviews      []models.Review      `yaml:"reviews"`
	Applications []models.Application `yaml:"applications"`
	Articles     []models.Article     `yaml:"articles"`
	Trainings    []models.Training    `yaml:"trainings"`
	FAQ          []models.FAQItem     `yaml:"faq"`
	SkillGroups  []models.SkillGroup  `yaml:"skills"`
	Pages        []models.PageBlock   `yaml:"pages"`
	Settings     []models.SiteSetting `yaml:"settings"`
}

// Default разбирает встроенный seed.yaml. Каждый вызов возвращает независимую копию.
func Default() (*Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(seedYAML, &d); err != nil {
		return nil, fmt.Errorf("mockdata: не удалось разобрать seed.yaml: %w", err)
	}
	return &d, nil
}

// MustDefault как Default, но паникует: seed.yaml встроен в бинарник и проверяется тестами.
func MustDefault() *Dataset {
	d, err := Default()
	if err != nil {
		panic(err)
	}
	return d
}
