package storage

func hasError(err error) bool {
	return err != nil
}

func noError(err error) bool {
	return err == nil
}

func isEmpty(value string) bool {
	return len(value) == 0
}
