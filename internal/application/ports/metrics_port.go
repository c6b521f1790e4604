package ports

// Recorder contadores de negocio. El adaptador Prometheus vive en infrastructure/metrics.
type Recorder interface {
	ReceiptCreated(currency string)
	DuplicateRejected(bank string)
	LoginFailed()
	ClientCreated()
}

// NopRecorder descarta las métricas (tests).
type NopRecorder struct{}

func (NopRecorder) ReceiptCreated(string)    {}
func (NopRecorder) DuplicateRejected(string) {}
func (NopRecorder) LoginFailed()             {}
func (NopRecorder) ClientCreated()           {}
