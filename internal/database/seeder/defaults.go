package seeder

func Defaults() []Seeder {
	return []Seeder{
		ProvincesSeeder{},
		SkillsSeeder{},
	}
}
