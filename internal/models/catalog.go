package models

// Section ids of the fixed inspection catalog.
const (
	SectionMechanical = "mechanical"
	SectionElectrical = "electrical"
	SectionExternal   = "external"
	SectionInterior   = "interior"
)

type catalogItem struct {
	id   string
	name string
}

type catalogSection struct {
	id    string
	title string
	emoji string
	items []catalogItem
}

var catalog = []catalogSection{
	{
		id: SectionMechanical, title: "ITENS MECÂNICOS", emoji: "🔧",
		items: []catalogItem{
			{"oil", "Nível do óleo do motor"},
			{"coolant", "Nível da água do radiador (líquido de arrefecimento)"},
			{"brake_fluid", "Nível do fluido de freio"},
			{"power_steering", "Nível do fluido da direção hidráulica"},
			{"transmission_oil", "Nível do óleo da transmissão (quando aplicável)"},
			{"leaks", "Vazamentos (óleo, água, combustível)"},
			{"clutch", "Estado da embreagem"},
			{"brakes", "Funcionamento do freio de pé e de mão"},
			{"noises", "Ruídos anormais no motor ou câmbio"},
		},
	},
	{
		id: SectionElectrical, title: "SISTEMA ELÉTRICO", emoji: "⚡",
		items: []catalogItem{
			{"headlights", "Faróis (alto e baixo)"},
			{"rear_lights", "Lanternas traseiras e dianteiras"},
			{"brake_light", "Luz de freio"},
			{"reverse_light", "Luz de ré"},
			{"turn_signals", "Pisca-alerta e setas"},
			{"interior_light", "Iluminação interna"},
			{"dashboard", "Painel de instrumentos funcionando corretamente"},
			{"horn", "Buzina"},
		},
	},
	{
		id: SectionExternal, title: "PARTE EXTERNA E ESTRUTURAL", emoji: "🚘",
		items: []catalogItem{
			{"tires", "Estado dos pneus (desgaste e calibragem)"},
			{"spare_tire", "Estepe em boas condições"},
			{"tools", "Macaco e chave de roda disponíveis"},
			{"bumpers", "Para-choques e retrovisores intactos"},
			{"wipers", "Limpador e lavador de para-brisa funcionando"},
			{"glass", "Vidros e parabrisas sem trincas"},
			{"doors", "Portas, travas e vidros elétricos funcionando"},
		},
	},
	{
		id: SectionInterior, title: "INTERIOR DO VEÍCULO", emoji: "🪑",
		items: []catalogItem{
			{"seatbelts", "Cintos de segurança funcionando"},
			{"seats", "Bancos e regulagens em bom estado"},
			{"mats", "Tapetes fixos e limpos"},
			{"ac", "Ar-condicionado/ventilação funcionando"},
			{"fire_extinguisher", "Extintor de incêndio (validade e lacre)"},
			{"triangle", "Triângulo de sinalização"},
			{"documents", "Documentos do veículo e do condutor"},
		},
	},
}

// CatalogSections returns a fresh copy of the inspection catalog with every
// status unset and all notes empty.
func CatalogSections() []Section {
	sections := make([]Section, len(catalog))
	for i, cs := range catalog {
		items := make([]Item, len(cs.items))
		for j, ci := range cs.items {
			items[j] = Item{ID: ci.id, Name: ci.name}
		}
		sections[i] = Section{ID: cs.id, Title: cs.title, Emoji: cs.emoji, Items: items}
	}
	return sections
}
