package expire_bookings

// Result итоги одного прохода
type Result struct {
	Completed int // истекшие бронирования
	Cancelled int // неоплаченные бронирования
	Skipped   int // уже завершены или оплачены к моменту обработки
	Failed    int // ошибки перехода, будут повторены на следующем проходе
}

// Total количество обработанных кандидатов
func (r Result) Total() int {
	return r.Completed + r.Cancelled + r.Skipped + r.Failed
}
