package server

// ChatResponse is returned by POST /chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// UploadResponse is returned by POST /upload, for accepted and rejected
// files alike.
type UploadResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	Document bool   `json:"document"`
}

// Messages shown to the user after an upload.
const (
	MsgUploadOK        = "Documento procesado correctamente."
	MsgNoFile          = "❌ No enviaste archivo"
	MsgEmptyFilename   = "❌ Nombre de archivo vacío"
	MsgUnsupportedType = "❌ Tipo de archivo no soportado: %s"
	MsgFileTooLarge    = "❌ El archivo supera el límite de %d MB"
	MsgEmptyDocument   = "❌ El documento no contiene texto"
	MsgIngestFailed    = "❌ No se pudo procesar el documento: %v"
)
