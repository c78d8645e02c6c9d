package transformer

import "painel-etl/internal/engine"

// Domains holds the per-dashboard engine configuration. The webhook
// backend is unversioned, so every canonical field lists the key
// spellings observed across payload versions.
var Domains = map[string]engine.Domain{
	"leads": {
		Name: "leads",
		Aliases: map[string][]string{
			"entry_date":    {"DATA DE ENTRADA", "Data de entrada", "data_entrada", "entry_date", "data", "date"},
			"delivery_date": {"DATA DE ENTREGA", "Data de entrega", "data_entrega", "delivery_date", "entrega"},
			"seller":        {"VENDEDOR", "Vendedor", "vendedor", "seller"},
			"phone":         {"TELEFONE", "Telefone", "telefone", "phone", "celular", "whatsapp"},
			"link":          {"LINK", "Link", "link", "url"},
			"money":         {"DINHEIRO", "Dinheiro", "dinheiro", "money", "tem_dinheiro", "budget"},
			"area":          {"AREA", "ÁREA", "Area", "area", "segmento"},
			"team":          {"TIME", "Time", "time", "team", "equipe", "funcionarios"},
			"system":        {"SISTEMA", "Sistema", "sistema", "system"},
			"challenge":     {"DESAFIO", "Desafio", "desafio", "challenge", "dor"},
			"origin":        {"ORIGEM", "Origem", "origem", "origin", "source"},
			"channel":       {"TAG", "Tag", "tag", "utm_source", "origem", "origin"},
			"entry_type":    {"TAG", "Tag", "tag", "tipo_entrada", "entry_type"},
			"stage":         {"ETAPA", "Etapa", "etapa", "stage", "fase", "FASE"},
			"substage":      {"SUBETAPA", "Subetapa", "subetapa", "substage", "subfase"},
		},
		Kinds: map[string]engine.Kind{
			"entry_date":    engine.KindDate,
			"delivery_date": engine.KindDate,
		},
		Buckets: map[string]engine.BucketFunc{
			"money":      engine.MoneyTriState,
			"team":       engine.TeamBucket,
			"channel":    engine.Channel,
			"entry_type": engine.EntryType,
			"stage":      engine.FunnelStage,
		},
		DateField:    "entry_date",
		SearchFields: []string{"seller", "phone", "link", "area", "system", "challenge", "origin"},
		MultiSelect:  []string{"seller", "area", "origin", "channel", "money", "team", "stage"},
		DefaultSort:  engine.SortState{Key: "entry_date", Direction: engine.Desc},
	},
	"sales": {
		Name: "sales",
		Aliases: map[string][]string{
			"sale_date":        {"DATA DA VENDA", "Data da venda", "data_venda", "sale_date", "data", "date"},
			"customer":         {"CLIENTE", "Cliente", "cliente", "customer", "empresa"},
			"seller":           {"VENDEDOR", "Vendedor", "vendedor", "seller"},
			"plan":             {"PLANO", "Plano", "plano", "plan"},
			"amount":           {"VALOR", "Valor", "valor", "amount", "value", "receita"},
			"days_to_purchase": {"DIAS ATE COMPRA", "Dias até compra", "dias_ate_compra", "days_to_purchase", "dias"},
			"quantity":         {"QUANTIDADE", "Quantidade", "quantidade", "quantity", "qtd"},
			"channel":          {"TAG", "Tag", "tag", "utm_source", "origem", "origin"},
		},
		Kinds: map[string]engine.Kind{
			"sale_date":        engine.KindDate,
			"amount":           engine.KindNumber,
			"days_to_purchase": engine.KindNumber,
			"quantity":         engine.KindNumber,
		},
		Buckets: map[string]engine.BucketFunc{
			"channel": engine.Channel,
		},
		DateField:    "sale_date",
		SearchFields: []string{"customer", "seller", "plan"},
		MultiSelect:  []string{"seller", "plan", "channel"},
		DefaultSort:  engine.SortState{Key: "sale_date", Direction: engine.Desc},
	},
	"mrr": {
		Name: "mrr",
		Aliases: map[string][]string{
			"month":    {"MES", "MÊS", "Mes", "mes", "month", "competencia", "data", "date"},
			"customer": {"CLIENTE", "Cliente", "cliente", "customer", "empresa"},
			"amount":   {"MRR", "mrr", "VALOR", "Valor", "valor", "amount"},
			"plan":     {"PLANO", "Plano", "plano", "plan"},
			"status":   {"STATUS", "Status", "status", "situacao"},
		},
		Kinds: map[string]engine.Kind{
			"month":  engine.KindDate,
			"amount": engine.KindNumber,
		},
		DateField:    "month",
		SearchFields: []string{"customer", "plan", "status"},
		MultiSelect:  []string{"plan", "status"},
		DefaultSort:  engine.SortState{Key: "month", Direction: engine.Desc},
	},
	"funnel": {
		Name: "funnel",
		Aliases: map[string][]string{
			"entry_date": {"DATA DE ENTRADA", "Data de entrada", "data_entrada", "entry_date", "data", "date"},
			"name":       {"NOME", "Nome", "nome", "name", "lead"},
			"seller":     {"VENDEDOR", "Vendedor", "vendedor", "seller"},
			"stage":      {"ETAPA", "Etapa", "etapa", "stage", "fase", "FASE"},
			"substage":   {"SUBETAPA", "Subetapa", "subetapa", "substage", "subfase"},
			"origin":     {"ORIGEM", "Origem", "origem", "origin", "source"},
		},
		Kinds: map[string]engine.Kind{
			"entry_date": engine.KindDate,
		},
		Buckets: map[string]engine.BucketFunc{
			"stage": engine.FunnelStage,
		},
		DateField:    "entry_date",
		SearchFields: []string{"name", "seller", "origin"},
		MultiSelect:  []string{"seller", "origin", "stage"},
		DefaultSort:  engine.SortState{Key: "entry_date", Direction: engine.Desc},
	},
	"landing": {
		Name: "landing",
		Aliases: map[string][]string{
			"date":        {"DATA", "Data", "data", "date"},
			"page":        {"PAGINA", "PÁGINA", "Pagina", "pagina", "page", "lp"},
			"visits":      {"VISITAS", "Visitas", "visitas", "visits", "sessoes"},
			"conversions": {"CONVERSOES", "CONVERSÕES", "Conversoes", "conversoes", "conversions", "leads"},
			"channel":     {"TAG", "Tag", "tag", "utm_source", "origem", "origin"},
		},
		Kinds: map[string]engine.Kind{
			"date":        engine.KindDate,
			"visits":      engine.KindNumber,
			"conversions": engine.KindNumber,
		},
		Buckets: map[string]engine.BucketFunc{
			"channel": engine.Channel,
		},
		DateField:    "date",
		SearchFields: []string{"page"},
		MultiSelect:  []string{"page", "channel"},
		DefaultSort:  engine.SortState{Key: "date", Direction: engine.Desc},
	},
	"campaigns": {
		Name: "campaigns",
		Aliases: map[string][]string{
			"date":        {"DATA", "Data", "data", "date"},
			"campaign":    {"CAMPANHA", "Campanha", "campanha", "campaign", "utm_campaign"},
			"channel":     {"CANAL", "Canal", "canal", "channel", "utm_source", "tag"},
			"investment":  {"INVESTIMENTO", "Investimento", "investimento", "investment", "custo", "cost"},
			"clicks":      {"CLIQUES", "Cliques", "cliques", "clicks"},
			"impressions": {"IMPRESSOES", "IMPRESSÕES", "Impressoes", "impressoes", "impressions"},
			"leads":       {"LEADS", "Leads", "leads"},
		},
		Kinds: map[string]engine.Kind{
			"date":        engine.KindDate,
			"investment":  engine.KindNumber,
			"clicks":      engine.KindNumber,
			"impressions": engine.KindNumber,
			"leads":       engine.KindNumber,
		},
		Buckets: map[string]engine.BucketFunc{
			"channel": engine.Channel,
		},
		DateField:    "date",
		SearchFields: []string{"campaign", "channel"},
		MultiSelect:  []string{"campaign", "channel"},
		DefaultSort:  engine.SortState{Key: "date", Direction: engine.Desc},
	},
}
