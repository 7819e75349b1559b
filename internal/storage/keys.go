package storage

import "fmt"

const (
	ResultFile = "result.json"
	CSVFile    = "report.csv"
	PDFFile    = "report.pdf"
	ErrorFile  = "error.json"
)

// TranscriptKey is where the upload of a job is stored.
func TranscriptKey(jobID string) string {
	return fmt.Sprintf("transcripts/%s.txt", jobID)
}

// ReportPrefix is the folder holding every artifact of a job.
func ReportPrefix(jobID string) string {
	return fmt.Sprintf("reports/%s/", jobID)
}

func ReportKey(jobID, name string) string {
	return ReportPrefix(jobID) + name
}
