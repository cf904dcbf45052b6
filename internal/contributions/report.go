package contributions

import (
	"bytes"
	"io/fs"
	"strconv"
	"strings"
)

const (
	reportHeaderConstant              = "Name;Email;GH handle if no email;Commits;Repositories"
	reportFieldSeparatorConstant      = ";"
	reportRepositorySeparatorConstant = ","
	reportQuoteConstant               = "\""
	reportEscapedQuoteConstant        = "\"\""
	reportLineTerminatorConstant      = "\n"
	reportFilePermissionsConstant     = fs.FileMode(0o644)
)

// ReportAppender appends report content to a file, creating it when missing.
type ReportAppender interface {
	AppendFile(path string, data []byte, permissions fs.FileMode) error
}

// FormatReport renders the header and one row per record in the provided order.
func FormatReport(records []ContributorRecord) []byte {
	var buffer bytes.Buffer
	buffer.WriteString(reportHeaderConstant)
	buffer.WriteString(reportLineTerminatorConstant)

	for _, record := range records {
		fields := []string{
			quoteField(record.DisplayName),
			quoteField(record.Email),
			record.Handle,
			strconv.Itoa(record.CommitCount),
			strings.Join(record.Repositories, reportRepositorySeparatorConstant),
		}
		buffer.WriteString(strings.Join(fields, reportFieldSeparatorConstant))
		buffer.WriteString(reportLineTerminatorConstant)
	}

	return buffer.Bytes()
}

// WriteReport sorts a copy of the records with the strategy and appends the rendered report to path.
func WriteReport(appender ReportAppender, path string, records []ContributorRecord, strategy SortStrategy) error {
	sortedRecords := append([]ContributorRecord{}, records...)
	strategy.Sort(sortedRecords)
	return appender.AppendFile(path, FormatReport(sortedRecords), reportFilePermissionsConstant)
}

func quoteField(value string) string {
	return reportQuoteConstant + strings.ReplaceAll(value, reportQuoteConstant, reportEscapedQuoteConstant) + reportQuoteConstant
}
