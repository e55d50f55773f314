package output

import "github.com/babacardot/suparaise-sub001/internal/domain/entity"

type MetricsPort interface {
	ObserveDispatch(formType entity.FormType, source string)
	ObserveInstruction(formType entity.FormType, length int, valid bool)
	ObserveSubmission(status entity.SubmissionStatus, engine string)
}
