package cluster

// TrainingData is the static corpus the fallback model is fit on. Rows are
// loosely grouped by intent; the clustering itself is unsupervised.
var TrainingData = []string{
	// greetings
	"hola",
	"hola, ¿cómo estás?",
	"buenos días",
	"buenas tardes",
	"buenas noches",
	"hola, qué tal",
	"hey, hola bot",
	"saludos",

	// farewells
	"adiós",
	"hasta luego",
	"nos vemos",
	"hasta pronto",
	"me voy, adiós",
	"chao, nos vemos mañana",
	"hasta la próxima",

	// identity
	"¿quién eres?",
	"¿qué eres?",
	"¿eres un robot?",
	"¿cómo te llamas?",
	"¿eres una inteligencia artificial?",
	"¿quién te creó?",
	"¿qué puedes hacer?",

	// help requests
	"necesito ayuda",
	"ayúdame por favor",
	"tengo una pregunta",
	"¿me puedes ayudar?",
	"quiero hacer una consulta",
	"tengo un problema con mi cuenta",
	"necesito información",

	// thanks
	"gracias",
	"muchas gracias",
	"te lo agradezco",
	"gracias por tu ayuda",
	"mil gracias",
	"excelente, gracias",

	// complaints
	"no funciona",
	"eso está mal",
	"no me sirvió",
	"la respuesta es incorrecta",
	"no entendiste",
	"algo salió mal",
	"estoy molesto",
}
